package listingstorage

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
)

// CreateTable provisions the listings table with its query indexes. The owner
// and status indexes share createdAt as their range key, which the struct
// based table builder can't express.
func CreateTable(ctx context.Context, db dynamolib.DynamoDBWrapper) error {
	stringAttribute := func(name string) *dynamodb.AttributeDefinition {
		return &dynamodb.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: aws.String(dynamodb.ScalarAttributeTypeS),
		}
	}

	keySchema := func(hashKey string, rangeKey string) []*dynamodb.KeySchemaElement {
		schema := []*dynamodb.KeySchemaElement{{
			AttributeName: aws.String(hashKey),
			KeyType:       aws.String(dynamodb.KeyTypeHash),
		}}

		if rangeKey != "" {
			schema = append(schema, &dynamodb.KeySchemaElement{
				AttributeName: aws.String(rangeKey),
				KeyType:       aws.String(dynamodb.KeyTypeRange),
			})
		}

		return schema
	}

	globalIndex := func(name string, hashKey string, rangeKey string) *dynamodb.GlobalSecondaryIndex {
		return &dynamodb.GlobalSecondaryIndex{
			IndexName: aws.String(name),
			KeySchema: keySchema(hashKey, rangeKey),
			Projection: &dynamodb.Projection{
				ProjectionType: aws.String(dynamodb.ProjectionTypeAll),
			},
		}
	}

	_, err := db.Client().CreateTableWithContext(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(ListingsTable),
		BillingMode: aws.String(dynamodb.BillingModePayPerRequest),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			stringAttribute(idKey),
			stringAttribute(ownerKey),
			stringAttribute(statusKey),
			stringAttribute(createdAtKey),
			stringAttribute(addressKey),
		},
		KeySchema: keySchema(idKey, ""),
		GlobalSecondaryIndexes: []*dynamodb.GlobalSecondaryIndex{
			globalIndex(StatusIndex, statusKey, createdAtKey),
			globalIndex(OwnerIndex, ownerKey, createdAtKey),
			globalIndex(AddressIndex, addressKey, ""),
		},
	})

	if err != nil {
		return errors.Wrap(err, "Failed to create listings table")
	}

	return nil
}
