package testing

import (
	"os"

	server_app "github.com/karasai/karasai-be/src/server/application"
	"github.com/karasai/karasai-be/src/shared/config"
	"github.com/karasai/karasai-be/src/shared/config/dev"
	"github.com/karasai/karasai-be/src/shared/config/envvar"
	"github.com/karasai/karasai-be/src/shared/lib/env"
)

func SetTestEnv() {
	if err := os.Setenv(envvar.ENVIRONMENT, string(env.Test)); err != nil {
		panic(err)
	}
}

func ServerConfig() server_app.Config {
	return server_app.Config{
		DynamoConfig:          DynamoConfig("server_test"),
		CloudStorageConfig:    dev.CloudStorageConfig,
		RabbitMQURL:           dev.RabbitMQHost,
		RabbitMQQueueName:     RabbitMQQueueName,
		CORSAllowedOrigins:    []string{"*"},
		UserValidator:         Validator{},
		CertificateSigningKey: CertificateSigningKey,
		Port:                  ServerPort,
		Log:                   false,
		EnsureTables:          false,
	}
}

// DynamoDB
const (
	DynamoAccessKeyID     = dev.DynamoAccessKeyID
	DynamoSecretAccessKey = dev.DynamoSecretAccessKey
	DynamoDBHost          = dev.DynamoDBHost
)

// DynamoConfig points at the local DynamoDB, separated per suite by region
func DynamoConfig(region string) config.LocalDynamo {
	return config.LocalDynamo{
		AccessKeyID:     DynamoAccessKeyID,
		SecretAccessKey: DynamoSecretAccessKey,
		Region:          region,
		Host:            DynamoDBHost,
	}
}

// RabbitMQ
const (
	RabbitMQQueueName = "karasai-jobs-test"
)

// Server
const (
	ServerPort            = ":5010"
	CertificateSigningKey = "karasai-test-certificate-key"
)
