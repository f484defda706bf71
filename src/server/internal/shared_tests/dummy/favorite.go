package dummy

import (
	"context"
	"sort"
	"sync"

	"github.com/karasai/karasai-be/src/server/internal/favorite/entity"
	"github.com/karasai/karasai-be/src/server/internal/favorite/storage"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
	shareddummy "github.com/karasai/karasai-be/src/shared/testing/dummy"
)

var _ favoriteentity.Store = &FavoriteStore{}

type FavoriteStore struct {
	Unavailable bool

	lock      sync.Mutex
	favorites map[string]map[string]favoriteentity.Favorite
}

func NewFavoriteStore() *FavoriteStore {
	return &FavoriteStore{
		favorites: map[string]map[string]favoriteentity.Favorite{},
	}
}

func (f *FavoriteStore) GetFavorites(_ context.Context, userID string) ([]favoriteentity.Favorite, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.Unavailable {
		return nil, mark.Wrap(shareddummy.NetworkFailure, favoritestorage.DefaultErrorMark, "Dummy store failure")
	}

	favorites := []favoriteentity.Favorite{}
	for _, favorite := range f.favorites[userID] {
		favorites = append(favorites, favorite)
	}

	sort.SliceStable(favorites, func(i, j int) bool {
		if favorites[i].SavedAt.Equal(favorites[j].SavedAt) {
			return favorites[i].ListingID < favorites[j].ListingID
		}
		return favorites[i].SavedAt.After(favorites[j].SavedAt)
	})

	return favorites, nil
}

func (f *FavoriteStore) PutFavorites(_ context.Context, favorites []favoriteentity.Favorite) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.Unavailable {
		return mark.Wrap(shareddummy.NetworkFailure, favoritestorage.DefaultErrorMark, "Dummy store failure")
	}

	for _, favorite := range favorites {
		if f.favorites[favorite.UserID] == nil {
			f.favorites[favorite.UserID] = map[string]favoriteentity.Favorite{}
		}
		f.favorites[favorite.UserID][favorite.ListingID] = favorite
	}

	return nil
}

func (f *FavoriteStore) DeleteFavorite(_ context.Context, userID string, listingID string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.Unavailable {
		return mark.Wrap(shareddummy.NetworkFailure, favoritestorage.DefaultErrorMark, "Dummy store failure")
	}

	delete(f.favorites[userID], listingID)
	return nil
}

func (f *FavoriteStore) DeleteAllForUser(_ context.Context, userID string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.Unavailable {
		return mark.Wrap(shareddummy.NetworkFailure, favoritestorage.DefaultErrorMark, "Dummy store failure")
	}

	delete(f.favorites, userID)
	return nil
}
