package dev

import "github.com/karasai/karasai-be/src/shared/config"

// DynamoDB
const (
	DynamoAccessKeyID     = "local"
	DynamoSecretAccessKey = "local"
	DynamoDBHost          = "http://localhost:8000"
	DynamoDBRegion        = "localhost"
)

var DynamoConfig = config.LocalDynamo{
	AccessKeyID:     DynamoAccessKeyID,
	SecretAccessKey: DynamoSecretAccessKey,
	Region:          DynamoDBRegion,
	Host:            DynamoDBHost,
}

// RabbitMQ
const (
	RabbitMQHost      = "amqp://localhost:5672"
	RabbitMQQueueName = "karasai-jobs-dev"
)

// Cloud storage, served by a local fake-gcs-server
const (
	CloudStorageHost     = "http://localhost:4443"
	CloudStorageEndpoint = "http://localhost:4443/storage/v1/"
	CloudStorageBucket   = "karasai-listing-images-dev"
)

var CloudStorageConfig = config.LocalCloudStorage{
	StorageHost:  CloudStorageHost,
	HostEndpoint: CloudStorageEndpoint,
	BucketName:   CloudStorageBucket,
}

// not a secret, only signs certificates issued against the local DB
const CertificateSigningKey = "karasai-dev-certificate-key"
