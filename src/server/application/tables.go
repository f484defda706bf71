package application

import (
	"context"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/server/internal/favorite/storage"
	"github.com/karasai/karasai-be/src/server/internal/listing/storage"
	"github.com/karasai/karasai-be/src/server/internal/user/storage"
	"github.com/karasai/karasai-be/src/shared/contact/storage"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
)

type tableCreator func(ctx context.Context, db dynamolib.DynamoDBWrapper) error

var tableCreators = map[string]tableCreator{
	userstorage.UsersTable:         userstorage.CreateTable,
	listingstorage.ListingsTable:   listingstorage.CreateTable,
	favoritestorage.FavoritesTable: favoritestorage.CreateTable,
	contactstorage.MessagesTable:   contactstorage.CreateTable,
}

// EnsureTables creates any missing table, for local DynamoDB and tests
func EnsureTables(ctx context.Context, db dynamolib.DynamoDBWrapper) error {
	existingTables, err := db.ListTables().AllWithContext(ctx)
	if err != nil {
		return errors.Wrap(err, "Failed to list tables")
	}

	existing := map[string]bool{}
	for _, tableName := range existingTables {
		existing[tableName] = true
	}

	for tableName, create := range tableCreators {
		if existing[tableName] {
			continue
		}

		if err := create(ctx, db); err != nil {
			return errors.Wrapf(err, "Failed to create table %s", tableName)
		}

		log.WithField("table", tableName).Info("Created table")
	}

	return nil
}
