package main

import (
	"strings"

	"github.com/apex/log"
	"github.com/karasai/karasai-be/src/server/application"
	"github.com/karasai/karasai-be/src/server/google_id"
	"github.com/karasai/karasai-be/src/shared/config/dev"
	"github.com/karasai/karasai-be/src/shared/config/envvar"
	"github.com/karasai/karasai-be/src/shared/config/prod"
	"github.com/karasai/karasai-be/src/shared/lib/env"
)

const (
	// not a secret, the dev client ID only accepts localhost origins
	devGoogleClientID = "karasai-dev.apps.googleusercontent.com"
)

func main() {
	if err := env.LoadDotEnv(); err != nil {
		panic(err)
	}

	var appConfig application.Config

	switch env.Get() {
	case env.Production:
		commaSeparatedOrigins := envvar.MustGet(envvar.ALLOWED_FE_ORIGINS)
		allowedOrigins := strings.Split(commaSeparatedOrigins, ",")

		appConfig = application.Config{
			DynamoConfig:          prod.DynamoConfig(),
			CloudStorageConfig:    prod.CloudStorageConfig(),
			RabbitMQURL:           envvar.MustGet(envvar.RABBITMQ_URL),
			RabbitMQQueueName:     envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME),
			CORSAllowedOrigins:    allowedOrigins,
			UserValidator:         google_id.GoogleValidator{ClientID: envvar.MustGet(envvar.GOOGLE_CLIENT_ID)},
			CertificateSigningKey: envvar.MustGet(envvar.CERTIFICATE_SIGNING_KEY),
			Port:                  ":5000",
			Log:                   true,
			EnsureTables:          false,
		}
	case env.Development:
		appConfig = application.Config{
			DynamoConfig:          dev.DynamoConfig,
			CloudStorageConfig:    dev.CloudStorageConfig,
			RabbitMQURL:           dev.RabbitMQHost,
			RabbitMQQueueName:     dev.RabbitMQQueueName,
			CORSAllowedOrigins:    []string{"*"},
			UserValidator:         google_id.GoogleValidator{ClientID: envvar.GetOrDefault(envvar.GOOGLE_CLIENT_ID, devGoogleClientID)},
			CertificateSigningKey: dev.CertificateSigningKey,
			Port:                  ":5000",
			Log:                   true,
			EnsureTables:          true,
		}

	default:
		panic("Unexpected environment")
	}

	app := application.NewApp(appConfig)
	log.WithField("port", appConfig.Port).Info("Starting Karasai API server")
	if err := app.Start(); err != nil {
		panic(err)
	}
}
