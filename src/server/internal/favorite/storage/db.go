package favoritestorage

import (
	"context"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/dynamo"
	"github.com/karasai/karasai-be/src/server/internal/favorite/entity"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
)

const (
	FavoritesTable = "Favorites"
	userIDKey      = "user_id"
	listingIDKey   = "listing_id"
)

type dbFavorite struct {
	UserID    string    `dynamo:"user_id,hash"`
	ListingID string    `dynamo:"listing_id,range"`
	SavedAt   time.Time `dynamo:"savedAt"`
}

func (d dbFavorite) toEntity() favoriteentity.Favorite {
	return favoriteentity.Favorite{
		UserID:    d.UserID,
		ListingID: d.ListingID,
		SavedAt:   d.SavedAt,
	}
}

var _ favoriteentity.Store = DB{}

type DB struct {
	dynamoDB dynamolib.DynamoDBWrapper
}

func NewDB(dynamoDB dynamolib.DynamoDBWrapper) DB {
	return DB{
		dynamoDB: dynamoDB,
	}
}

func (d DB) GetFavorites(ctx context.Context, userID string) ([]favoriteentity.Favorite, error) {
	values := []dbFavorite{}
	err := d.dynamoDB.Table(FavoritesTable).
		Get(userIDKey, userID).
		AllWithContext(ctx, &values)

	if err != nil {
		return nil, mark.Wrap(err, DefaultErrorMark, "Failed to fetch favorites for user")
	}

	favorites := []favoriteentity.Favorite{}
	for _, value := range values {
		favorites = append(favorites, value.toEntity())
	}

	// the range key is the listing ID, so saved order is restored here
	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].SavedAt.After(favorites[j].SavedAt)
	})

	return favorites, nil
}

func (d DB) PutFavorites(ctx context.Context, favorites []favoriteentity.Favorite) error {
	if len(favorites) == 0 {
		return nil
	}

	items := []any{}
	for _, favorite := range favorites {
		items = append(items, dbFavorite{
			UserID:    favorite.UserID,
			ListingID: favorite.ListingID,
			SavedAt:   favorite.SavedAt.UTC(),
		})
	}

	_, err := d.dynamoDB.Table(FavoritesTable).
		Batch(userIDKey, listingIDKey).
		Write().
		Put(items...).
		RunWithContext(ctx)

	if err != nil {
		return mark.Wrap(err, DefaultErrorMark, "Failed to save favorites")
	}

	return nil
}

func (d DB) DeleteFavorite(ctx context.Context, userID string, listingID string) error {
	err := d.dynamoDB.Table(FavoritesTable).
		Delete(userIDKey, userID).
		Range(listingIDKey, listingID).
		RunWithContext(ctx)

	if err != nil {
		return mark.Wrap(err, DefaultErrorMark, "Failed to delete favorite")
	}

	return nil
}

func (d DB) DeleteAllForUser(ctx context.Context, userID string) error {
	favorites, err := d.GetFavorites(ctx, userID)
	if err != nil {
		return err
	}

	if len(favorites) == 0 {
		return nil
	}

	keys := []dynamo.Keyed{}
	for _, favorite := range favorites {
		keys = append(keys, dynamo.Keys{favorite.UserID, favorite.ListingID})
	}

	_, err = d.dynamoDB.Table(FavoritesTable).
		Batch(userIDKey, listingIDKey).
		Write().
		Delete(keys...).
		RunWithContext(ctx)

	if err != nil {
		return mark.Wrap(err, DefaultErrorMark, "Failed to delete favorites for user")
	}

	return nil
}

func CreateTable(ctx context.Context, db dynamolib.DynamoDBWrapper) error {
	if err := db.CreateTable(FavoritesTable, dbFavorite{}).RunWithContext(ctx); err != nil {
		return errors.Wrap(err, "Failed to create favorites table")
	}

	return nil
}
