package image_purge

import (
	"context"
	"encoding/json"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/hashicorp/go-multierror"
	"github.com/karasai/karasai-be/src/shared/jobs"
	"github.com/karasai/karasai-be/src/shared/lib/filestore"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const JobType = jobs.ListingImagesPurgeType

//counterfeiter:generate . ImagePurgeHandler
type ImagePurgeHandler interface {
	HandleImagePurge(ctx context.Context, message []byte) error
}

type JobParams = jobs.ListingImagesPurge

func NewJobHandler(fileStore filestore.FileStore) JobHandler {
	return JobHandler{
		fileStore: fileStore,
	}
}

type JobHandler struct {
	fileStore filestore.FileStore
}

// HandleImagePurge deletes every image of a deleted listing. Images that are
// already gone count as deleted, all other failures are collected.
func (h JobHandler) HandleImagePurge(ctx context.Context, message []byte) error {
	params, err := unmarshalMessage(message)
	if err != nil {
		return errors.Wrap(err, "Failed to unmarshal message JSON")
	}

	logger := log.WithField("listing_id", params.ListingID)

	var purgeErr *multierror.Error
	for _, imageURL := range params.Images {
		err := h.fileStore.Delete(ctx, imageURL)
		switch {
		case err == nil:
			logger.WithField("url", imageURL).Debug("Deleted image")
		case markers.Is(err, filestore.ObjectNotFoundMark):
			logger.WithField("url", imageURL).Warn("Image was already deleted")
		default:
			purgeErr = multierror.Append(purgeErr, errors.Wrapf(err, "Failed to delete %s", imageURL))
		}
	}

	if err := purgeErr.ErrorOrNil(); err != nil {
		return errors.Wrapf(err, "Failed to delete %d of %d images", purgeErr.Len(), len(params.Images))
	}

	logger.WithField("count", len(params.Images)).Info("Purged listing images")
	return nil
}

func unmarshalMessage(message []byte) (JobParams, error) {
	params := JobParams{}
	if err := json.Unmarshal(message, &params); err != nil {
		return JobParams{}, errors.Wrap(err, "Failed to unmarshal message JSON")
	}

	if params.ListingID == "" {
		return JobParams{}, errors.New("Missing listing ID")
	}

	return params, nil
}
