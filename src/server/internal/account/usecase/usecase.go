package accountusecase

import (
	"context"

	"github.com/karasai/karasai-be/src/server/internal/contact/usecase"
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/favorite/usecase"
	"github.com/karasai/karasai-be/src/server/internal/listing/usecase"
	"github.com/karasai/karasai-be/src/server/internal/user/usecase"
)

// Usecase closes accounts, which spans every domain that keeps user data
type Usecase struct {
	userUsecase     userusecase.Usecase
	listingUsecase  listingusecase.Usecase
	favoriteUsecase favoriteusecase.Usecase
	contactUsecase  contactusecase.Usecase
}

func NewUsecase(
	userUsecase userusecase.Usecase,
	listingUsecase listingusecase.Usecase,
	favoriteUsecase favoriteusecase.Usecase,
	contactUsecase contactusecase.Usecase,
) Usecase {
	return Usecase{
		userUsecase:     userUsecase,
		listingUsecase:  listingUsecase,
		favoriteUsecase: favoriteUsecase,
		contactUsecase:  contactUsecase,
	}
}

// DeleteAccount removes the user's data before the account itself, so a
// failure part way can be retried by the still existing owner
func (u Usecase) DeleteAccount(ctx context.Context, authHeader string, userID string) *api.Error {
	if apiErr := u.userUsecase.VerifyOwner(ctx, authHeader, userID); apiErr != nil {
		return api.WrapError(apiErr, "Cannot verify the account owner")
	}

	if apiErr := u.favoriteUsecase.DeleteAllForUser(ctx, userID); apiErr != nil {
		return api.WrapError(apiErr, "Failed to delete favorites of the account")
	}

	if apiErr := u.listingUsecase.DeleteAllForOwner(ctx, userID); apiErr != nil {
		return api.WrapError(apiErr, "Failed to delete listings of the account")
	}

	if apiErr := u.contactUsecase.DeleteInbox(ctx, userID); apiErr != nil {
		return api.WrapError(apiErr, "Failed to delete messages of the account")
	}

	if apiErr := u.userUsecase.DeleteUser(ctx, userID); apiErr != nil {
		return api.WrapError(apiErr, "Failed to delete the account")
	}

	return nil
}
