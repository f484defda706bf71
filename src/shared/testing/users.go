package testing

import (
	"context"
	"fmt"

	"github.com/karasai/karasai-be/src/server/google_id"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
)

type User struct {
	ID    string
	Name  string
	Email string
	Admin bool
}

var (
	// in the system, Google validated, owns listings
	PrimaryUser = User{
		ID:    "primary-user-id",
		Name:  "Aigerim Primary",
		Email: "primary@karasai.kz",
	}

	// in the system, Google validated, but doesn't own the primary user's things
	OtherUser = User{
		ID:    "other-user-id",
		Name:  "Other User",
		Email: "other@karasai.kz",
	}

	// in the system and a moderator
	AdminUser = User{
		ID:    "admin-user-id",
		Name:  "Admin User",
		Email: "admin@karasai.kz",
		Admin: true,
	}

	// Google validated but not in the system
	NoAccountUser = User{
		ID:    "not-in-db-id",
		Name:  "Not In DB User",
		Email: "newcomer@example.com",
	}

	// not Google validated, also not in the system
	GoogleUnauthorizedUser = User{
		ID:    "google-unauthorized-user-id",
		Name:  "Google Unauthorized User",
		Email: "rando@example.com",
	}

	// Google validated token, but Google hasn't verified the email
	UnverifiedEmailUser = User{
		ID:    "unverified-email-user-id",
		Name:  "Unverified Email User",
		Email: "unverified@example.com",
	}
)

// ExistingUsers are the users a fresh test store is seeded with
func ExistingUsers() []User {
	return []User{PrimaryUser, OtherUser, AdminUser}
}

func TokenForUserID(userID string) string {
	return fmt.Sprintf("%s-token", userID)
}

func AuthHeaderFor(user User) string {
	return "Bearer " + TokenForUserID(user.ID)
}

var _ google_id.Validator = Validator{}

// Validator accepts the token of every fixture user except
// GoogleUnauthorizedUser and UnverifiedEmailUser
type Validator struct{}

func (t Validator) ValidateToken(ctx context.Context, requestToken string) (google_id.User, error) {
	validatedUsers := []User{PrimaryUser, OtherUser, AdminUser, NoAccountUser}

	for _, validatedUser := range validatedUsers {
		if requestToken == TokenForUserID(validatedUser.ID) {
			return google_id.User{
				GoogleID: validatedUser.ID,
				Name:     validatedUser.Name,
				Email:    validatedUser.Email,
			}, nil
		}
	}

	if requestToken == TokenForUserID(UnverifiedEmailUser.ID) {
		return google_id.User{}, mark.Message(google_id.UnverifiedEmailMark, "Email is not verified")
	}

	return google_id.User{}, mark.Message(google_id.NotValidatedMark, "User is not validated")
}
