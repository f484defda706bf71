package filestore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/domains"
	"github.com/karasai/karasai-be/src/shared/config"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
)

var (
	ForeignURLMark     = domains.New("foreign_url")
	ObjectNotFoundMark = domains.New("object_not_found")
)

type FileStore interface {
	Upload(ctx context.Context, objectPath string, contentType string, contents io.Reader) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// PathGenerator builds public URLs of the form host/bucket/object
type PathGenerator struct {
	Host   string
	Bucket string
}

func NewPathGenerator(cloudStorageConfig config.CloudStorage) PathGenerator {
	return PathGenerator{
		Host:   cloudStorageConfig.GetStorageHost(),
		Bucket: cloudStorageConfig.GetBucket(),
	}
}

func (p PathGenerator) URL(objectPath string) string {
	return fmt.Sprintf("%s/%s/%s", p.Host, p.Bucket, objectPath)
}

func (p PathGenerator) ObjectPath(fileURL string) (string, error) {
	prefix := fmt.Sprintf("%s/%s/", p.Host, p.Bucket)
	if !strings.HasPrefix(fileURL, prefix) {
		err := errors.Newf("URL %s is not under %s", fileURL, prefix)
		return "", mark.Wrap(err, ForeignURLMark, "URL does not belong to this bucket")
	}

	objectPath := strings.TrimPrefix(fileURL, prefix)
	if objectPath == "" {
		err := errors.New("URL has no object path")
		return "", mark.Wrap(err, ForeignURLMark, "URL points at the bucket root")
	}

	return objectPath, nil
}

var _ FileStore = GoogleFileStore{}

type GoogleFileStore struct {
	client        *storage.Client
	pathGenerator PathGenerator
}

func NewGoogleFileStore(cloudStorageConfig config.CloudStorage) (GoogleFileStore, error) {
	client, err := storage.NewClient(context.Background(), cloudStorageConfig.ClientOptions()...)
	if err != nil {
		return GoogleFileStore{}, errors.Wrap(err, "Failed to create google cloud storage client")
	}

	return GoogleFileStore{
		client:        client,
		pathGenerator: NewPathGenerator(cloudStorageConfig),
	}, nil
}

func (g GoogleFileStore) Upload(ctx context.Context, objectPath string, contentType string, contents io.Reader) (string, error) {
	writer := g.client.Bucket(g.pathGenerator.Bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, contents); err != nil {
		_ = writer.Close()
		return "", errors.Wrap(err, "Failed to write file contents to cloud storage")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "Failed to finalize file upload")
	}

	return g.pathGenerator.URL(objectPath), nil
}

func (g GoogleFileStore) Delete(ctx context.Context, fileURL string) error {
	objectPath, err := g.pathGenerator.ObjectPath(fileURL)
	if err != nil {
		return err
	}

	err = g.client.Bucket(g.pathGenerator.Bucket).Object(objectPath).Delete(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return mark.Wrap(err, ObjectNotFoundMark, "File is already gone")
		}

		return errors.Wrap(err, "Failed to delete file from cloud storage")
	}

	return nil
}
