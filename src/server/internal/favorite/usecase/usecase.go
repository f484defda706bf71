package favoriteusecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/favorite/entity"
	"github.com/karasai/karasai-be/src/server/internal/favorite/errors"
	"github.com/karasai/karasai-be/src/server/internal/listing/errors"
	"github.com/karasai/karasai-be/src/server/internal/listing/usecase"
	"github.com/karasai/karasai-be/src/server/internal/user/entity"
	"github.com/karasai/karasai-be/src/server/internal/user/usecase"
	"github.com/karasai/karasai-be/src/shared/lib/validate"
)

type Usecase struct {
	db             favoriteentity.Store
	userUsecase    userusecase.Usecase
	listingUsecase listingusecase.Usecase
}

func NewUsecase(db favoriteentity.Store, userUsecase userusecase.Usecase, listingUsecase listingusecase.Usecase) Usecase {
	return Usecase{
		db:             db,
		userUsecase:    userUsecase,
		listingUsecase: listingUsecase,
	}
}

// GetFavorites leaves out listings the user can no longer see, they come
// back if the listing is approved again
func (u Usecase) GetFavorites(ctx context.Context, authHeader string, userID string) ([]favoriteentity.Summary, *api.Error) {
	user, apiErr := u.userUsecase.AuthenticateOwner(ctx, authHeader, userID)
	if apiErr != nil {
		return nil, api.WrapError(apiErr, "Cannot verify the favorites owner")
	}

	return u.summaries(ctx, user)
}

// SaveFavorite is idempotent, saving an already saved listing keeps its
// original saved time
func (u Usecase) SaveFavorite(ctx context.Context, authHeader string, userID string, listingID string) *api.Error {
	user, apiErr := u.userUsecase.AuthenticateOwner(ctx, authHeader, userID)
	if apiErr != nil {
		return api.WrapError(apiErr, "Cannot verify the favorites owner")
	}

	listing, apiErr := u.listingUsecase.FindListing(ctx, listingID)
	if apiErr != nil {
		return api.WrapError(apiErr, "Cannot favorite a listing that can't be found")
	}

	if !listing.VisibleTo(user.ID, user.Admin) {
		return api.CommitError(errors.Newf("Listing %s is %s", listingID, listing.Defined.Status),
			listingerrors.ListingNotFoundCode,
			"The listing could not be found")
	}

	existing, apiErr := u.savedListingIDs(ctx, userID)
	if apiErr != nil {
		return apiErr
	}

	if existing[listingID] {
		return nil
	}

	return u.put(ctx, []favoriteentity.Favorite{{
		UserID:    userID,
		ListingID: listingID,
		SavedAt:   now(),
	}})
}

func (u Usecase) RemoveFavorite(ctx context.Context, authHeader string, userID string, listingID string) *api.Error {
	if apiErr := u.userUsecase.VerifyOwner(ctx, authHeader, userID); apiErr != nil {
		return api.WrapError(apiErr, "Cannot verify the favorites owner")
	}

	if err := u.db.DeleteFavorite(ctx, userID, listingID); err != nil {
		return api.CommitError(errors.Wrap(err, "Failed to delete favorite"),
			api.DefaultErrorCode,
			"Unknown error: Failed to remove the favorite")
	}

	return nil
}

// MergeGuestFavorites saves the favorites collected before signing in.
// Unknown or hidden listings and ones already saved are skipped.
func (u Usecase) MergeGuestFavorites(ctx context.Context, authHeader string, userID string, request favoriteentity.MergeRequest) ([]favoriteentity.Summary, *api.Error) {
	user, apiErr := u.userUsecase.AuthenticateOwner(ctx, authHeader, userID)
	if apiErr != nil {
		return nil, api.WrapError(apiErr, "Cannot verify the favorites owner")
	}

	if err := validate.Struct(request); err != nil {
		return nil, api.CommitError(errors.Wrap(err, "Merge request failed validation"),
			favoriteerrors.BadFavoriteDataCode,
			fmt.Sprintf("Up to %d favorites can be merged at once", favoriteentity.MaxMergeSize))
	}

	existing, apiErr := u.savedListingIDs(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}

	listings, apiErr := u.listingUsecase.FindListings(ctx, request.ListingIDs)
	if apiErr != nil {
		return nil, api.WrapError(apiErr, "Failed to look up the guest favorites")
	}

	newFavorites := []favoriteentity.Favorite{}
	for _, listing := range listings {
		if existing[listing.Defined.ID] || !listing.VisibleTo(user.ID, user.Admin) {
			continue
		}

		newFavorites = append(newFavorites, favoriteentity.Favorite{
			UserID:    userID,
			ListingID: listing.Defined.ID,
		})
	}

	// guest lists are ordered oldest first, the last one is saved now and
	// the earlier ones a second apart before it
	savedAt := now()
	for i := range newFavorites {
		newFavorites[i].SavedAt = savedAt.Add(-time.Duration(len(newFavorites)-1-i) * time.Second)
	}

	if apiErr := u.put(ctx, newFavorites); apiErr != nil {
		return nil, apiErr
	}

	return u.summaries(ctx, user)
}

// DeleteAllForUser is for account removal, the caller verifies ownership
func (u Usecase) DeleteAllForUser(ctx context.Context, userID string) *api.Error {
	if err := u.db.DeleteAllForUser(ctx, userID); err != nil {
		return api.CommitError(errors.Wrap(err, "Failed to delete favorites for user"),
			api.DefaultErrorCode,
			"Unknown error: Failed to remove your favorites")
	}

	return nil
}

func (u Usecase) summaries(ctx context.Context, user userentity.User) ([]favoriteentity.Summary, *api.Error) {
	favorites, err := u.db.GetFavorites(ctx, user.ID)
	if err != nil {
		return nil, api.CommitError(errors.Wrap(err, "Failed to get favorites"),
			api.DefaultErrorCode,
			"Unknown error: Failed to fetch your favorites")
	}

	listingIDs := []string{}
	for _, favorite := range favorites {
		listingIDs = append(listingIDs, favorite.ListingID)
	}

	listings, apiErr := u.listingUsecase.FindListings(ctx, listingIDs)
	if apiErr != nil {
		return nil, api.WrapError(apiErr, "Failed to look up favorited listings")
	}

	// FindListings keeps the order of listingIDs and skips deleted listings
	summaries := []favoriteentity.Summary{}
	favoriteIndex := 0
	for _, listing := range listings {
		for favorites[favoriteIndex].ListingID != listing.Defined.ID {
			favoriteIndex++
		}

		if !listing.VisibleTo(user.ID, user.Admin) {
			continue
		}

		summaries = append(summaries, favoriteentity.NewSummary(favorites[favoriteIndex], listing))
	}

	return summaries, nil
}

func (u Usecase) savedListingIDs(ctx context.Context, userID string) (map[string]bool, *api.Error) {
	favorites, err := u.db.GetFavorites(ctx, userID)
	if err != nil {
		return nil, api.CommitError(errors.Wrap(err, "Failed to get favorites"),
			api.DefaultErrorCode,
			"Unknown error: Failed to fetch your favorites")
	}

	saved := map[string]bool{}
	for _, favorite := range favorites {
		saved[favorite.ListingID] = true
	}

	return saved, nil
}

func (u Usecase) put(ctx context.Context, favorites []favoriteentity.Favorite) *api.Error {
	if err := u.db.PutFavorites(ctx, favorites); err != nil {
		return api.CommitError(errors.Wrap(err, "Failed to save favorites"),
			api.DefaultErrorCode,
			"Unknown error: Failed to save your favorites")
	}

	return nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
