package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/shared/config/dev"
	"github.com/karasai/karasai-be/src/shared/config/envvar"
	"github.com/karasai/karasai-be/src/shared/jobs"
	"github.com/karasai/karasai-be/src/shared/lib/rabbitmq"
)

// sender publishes a single job to the dev queue for manually exercising the
// worker, e.g. `go run ./src/worker/internal/sender contact <contact-id>`
func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: sender contact <contact-id> | sender purge <listing-id> <image-url>...")
		os.Exit(1)
	}

	rabbitURL := envvar.GetOrDefault(envvar.RABBITMQ_URL, dev.RabbitMQHost)
	queueName := envvar.GetOrDefault(envvar.RABBITMQ_QUEUE_NAME, dev.RabbitMQQueueName)

	publisher, err := rabbitmq.NewQueuePublisher(rabbitURL, queueName)
	if err != nil {
		panic(err)
	}
	defer publisher.Close()

	ctx := context.Background()

	switch os.Args[1] {
	case "contact":
		err = rabbitmq.PublishJSON(ctx, publisher, jobs.ContactSubmittedType, jobs.ContactSubmitted{
			ContactID: os.Args[2],
		})
	case "purge":
		err = rabbitmq.PublishJSON(ctx, publisher, jobs.ListingImagesPurgeType, jobs.ListingImagesPurge{
			ListingID: os.Args[2],
			Images:    os.Args[3:],
		})
	default:
		err = errors.Newf("Unknown job kind %s", os.Args[1])
	}

	if err != nil {
		panic(err)
	}
}
