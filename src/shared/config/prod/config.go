package prod

import (
	"github.com/karasai/karasai-be/src/shared/config"
	"github.com/karasai/karasai-be/src/shared/config/envvar"
)

// DynamoConfig reads the AWS credentials from the environment, panicking when
// they are missing
func DynamoConfig() config.ProdDynamo {
	return config.ProdDynamo{
		AccessKeyID:     envvar.MustGet(envvar.AWS_ACCESS_KEY_ID),
		SecretAccessKey: envvar.MustGet(envvar.AWS_SECRET_ACCESS_KEY),
		Region:          DynamoDBRegion,
	}
}

func CloudStorageConfig() config.ProdCloudStorage {
	return config.ProdCloudStorage{
		StorageHost: GOOGLE_STORAGE_HOST,
		SecretKey:   envvar.MustGet(envvar.GOOGLE_CLOUD_KEY),
		BucketName:  envvar.MustGet(envvar.GOOGLE_CLOUD_STORAGE_BUCKET_NAME),
	}
}
