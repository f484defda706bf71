package job_router

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/worker/internal/application/jobs/contact_delivery"
	"github.com/karasai/karasai-be/src/worker/internal/application/jobs/image_purge"
	"github.com/rabbitmq/amqp091-go"
)

func NewJobRouter(
	contactDeliveryHandler contact_delivery.ContactDeliveryHandler,
	imagePurgeHandler image_purge.ImagePurgeHandler,
) JobRouter {
	return JobRouter{
		contactDeliveryHandler: contactDeliveryHandler,
		imagePurgeHandler:      imagePurgeHandler,
	}
}

type JobRouter struct {
	contactDeliveryHandler contact_delivery.ContactDeliveryHandler
	imagePurgeHandler      image_purge.ImagePurgeHandler
}

func (j JobRouter) HandleMessage(ctx context.Context, message amqp091.Delivery) error {
	switch message.Type {
	case contact_delivery.JobType:
		return errors.Wrap(j.contactDeliveryHandler.HandleContactSubmitted(ctx, message.Body),
			"Failed to handle contact delivery job")

	case image_purge.JobType:
		return errors.Wrap(j.imagePurgeHandler.HandleImagePurge(ctx, message.Body),
			"Failed to handle image purge job")

	default:
		return errors.Newf("Unrecognized message type %q", message.Type)
	}
}
