package contact_delivery

import (
	"context"
	"encoding/json"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/shared/contact/entity"
	"github.com/karasai/karasai-be/src/shared/jobs"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const JobType = jobs.ContactSubmittedType

//counterfeiter:generate . ContactDeliveryHandler
type ContactDeliveryHandler interface {
	HandleContactSubmitted(ctx context.Context, message []byte) error
}

type JobParams = jobs.ContactSubmitted

func NewJobHandler(contactStore contactentity.Store) JobHandler {
	return JobHandler{
		contactStore: contactStore,
	}
}

type JobHandler struct {
	contactStore contactentity.Store
}

func (h JobHandler) HandleContactSubmitted(ctx context.Context, message []byte) error {
	params, err := unmarshalMessage(message)
	if err != nil {
		return errors.Wrap(err, "Failed to unmarshal message JSON")
	}

	contactMessage, err := h.contactStore.GetMessage(ctx, params.ContactID)
	if err != nil {
		return errors.Wrapf(err, "Failed to load contact message %s", params.ContactID)
	}

	if contactMessage.Status != contactentity.ReceivedStatus {
		return errors.Newf("Contact message %s is %s, abort delivery to be safe",
			contactMessage.ID, contactMessage.Status)
	}

	log.WithField("contact_id", contactMessage.ID).
		WithField("recipient", contactMessage.Recipient).
		WithField("listing_id", contactMessage.ListingID).
		WithField("subject", contactMessage.Subject).
		Info("Delivering contact message")

	err = h.contactStore.TransitionStatus(ctx, contactMessage.ID,
		contactentity.ReceivedStatus, contactentity.ForwardedStatus)
	if err != nil {
		return errors.Wrapf(err, "Failed to mark contact message %s as forwarded", contactMessage.ID)
	}

	return nil
}

func unmarshalMessage(message []byte) (JobParams, error) {
	params := JobParams{}
	if err := json.Unmarshal(message, &params); err != nil {
		return JobParams{}, errors.Wrap(err, "Failed to unmarshal message JSON")
	}

	if params.ContactID == "" {
		return JobParams{}, errors.New("Missing contact ID")
	}

	return params, nil
}
