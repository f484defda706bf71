package application

import (
	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/shared/config"
	"github.com/karasai/karasai-be/src/shared/contact/entity"
	"github.com/karasai/karasai-be/src/shared/contact/storage"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
	"github.com/karasai/karasai-be/src/shared/lib/filestore"
	"github.com/karasai/karasai-be/src/worker/internal/application/jobs/contact_delivery"
	"github.com/karasai/karasai-be/src/worker/internal/application/jobs/image_purge"
	"github.com/karasai/karasai-be/src/worker/internal/application/jobs/job_router"
	"github.com/karasai/karasai-be/src/worker/internal/application/worker"
	"github.com/rabbitmq/amqp091-go"
)

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}

	return t
}

type App struct {
	worker *worker.QueueWorker
}

type Config struct {
	RabbitMQURL        string
	RabbitMQQueueName  string
	DynamoConfig       config.Dynamo
	CloudStorageConfig config.CloudStorage
}

func NewApp(config Config) App {
	consumerConn := must(amqp091.Dial(config.RabbitMQURL))
	contactStore := contactstorage.NewDB(dynamolib.NewDynamoDB(config.DynamoConfig))
	fileStore := must(filestore.NewGoogleFileStore(config.CloudStorageConfig))

	queueWorker := must(worker.NewQueueWorkerFromConnection(
		consumerConn,
		config.RabbitMQQueueName,
		NewJobRouter(contactStore, fileStore)))

	return App{
		worker: queueWorker,
	}
}

func NewJobRouter(contactStore contactentity.Store, fileStore filestore.FileStore) job_router.JobRouter {
	return job_router.NewJobRouter(
		contact_delivery.NewJobHandler(contactStore),
		image_purge.NewJobHandler(fileStore))
}

func (a *App) Start() error {
	err := a.worker.Start()
	if err != nil {
		return errors.Wrap(err, "Failed to start worker")
	}

	return nil
}

func (a *App) Stop() {
	a.worker.Stop()
}
