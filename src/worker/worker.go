package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/karasai/karasai-be/src/shared/config/dev"
	"github.com/karasai/karasai-be/src/shared/config/envvar"
	"github.com/karasai/karasai-be/src/shared/config/prod"
	"github.com/karasai/karasai-be/src/shared/lib/env"
	"github.com/karasai/karasai-be/src/worker/application"
)

func main() {
	if err := env.LoadDotEnv(); err != nil {
		panic(err)
	}

	app := application.NewApp(workerConfig(env.Get()))

	go stopOnSignal(&app)

	if err := app.Start(); err != nil {
		panic(err)
	}

	log.Info("Worker stopped")
}

func workerConfig(environment env.Environment) application.Config {
	switch environment {
	case env.Production:
		return application.Config{
			DynamoConfig:       prod.DynamoConfig(),
			CloudStorageConfig: prod.CloudStorageConfig(),
			RabbitMQURL:        envvar.MustGet(envvar.RABBITMQ_URL),
			RabbitMQQueueName:  envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME),
		}

	case env.Development:
		return application.Config{
			DynamoConfig:       dev.DynamoConfig,
			CloudStorageConfig: dev.CloudStorageConfig,
			RabbitMQURL:        envvar.GetOrDefault(envvar.RABBITMQ_URL, dev.RabbitMQHost),
			RabbitMQQueueName:  envvar.GetOrDefault(envvar.RABBITMQ_QUEUE_NAME, dev.RabbitMQQueueName),
		}

	default:
		panic("Unexpected environment")
	}
}

// stopOnSignal closes the queue channel so Start drains and returns
func stopOnSignal(app *application.App) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	sig := <-signals
	log.WithField("signal", sig.String()).Info("Stopping worker")
	app.Stop()
}
