package envvar

import (
	"fmt"
	"os"
)

const (
	ENVIRONMENT                      = "ENVIRONMENT"
	AWS_ACCESS_KEY_ID                = "AWS_ACCESS_KEY_ID"
	AWS_SECRET_ACCESS_KEY            = "AWS_SECRET_ACCESS_KEY"
	RABBITMQ_URL                     = "RABBITMQ_URL"
	RABBITMQ_QUEUE_NAME              = "RABBITMQ_QUEUE_NAME"
	GOOGLE_CLOUD_KEY                 = "GOOGLE_CLOUD_KEY"
	GOOGLE_CLOUD_STORAGE_BUCKET_NAME = "GOOGLE_CLOUD_STORAGE_BUCKET_NAME"
	GOOGLE_CLIENT_ID                 = "GOOGLE_CLIENT_ID"
	CERTIFICATE_SIGNING_KEY          = "CERTIFICATE_SIGNING_KEY"
	ALLOWED_FE_ORIGINS               = "ALLOWED_FE_ORIGINS"
)

func MustGet(key string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet {
		panic(fmt.Sprintf("No env variable found for key %s", key))
	}

	if val == "" {
		panic(fmt.Sprintf("Env variable is empty for key %s", key))
	}

	return val
}

func GetOrDefault(key string, defaultValue string) string {
	val, isSet := os.LookupEnv(key)
	if !isSet || val == "" {
		return defaultValue
	}

	return val
}
