package userusecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/karasai/karasai-be/src/server/google_id"
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/auth"
	"github.com/karasai/karasai-be/src/server/internal/user/entity"
	"github.com/karasai/karasai-be/src/server/internal/user/errors"
	"github.com/karasai/karasai-be/src/server/internal/user/storage"
	"github.com/karasai/karasai-be/src/shared/lib/validate"
)

const (
	bearerPrefix = "Bearer "
)

type Usecase struct {
	db              userentity.Store
	googleValidator google_id.Validator
}

func NewUsecase(db userentity.Store, googleValidator google_id.Validator) Usecase {
	return Usecase{
		db:              db,
		googleValidator: googleValidator,
	}
}

func (u Usecase) VerifyOwner(ctx context.Context, authHeader string, ownerID string) *api.Error {
	var userFromGoogle google_id.User
	var validateHeaderErr *api.Error
	var getOwnerErr *api.Error

	waitgroup := sync.WaitGroup{}
	waitgroup.Add(2)

	validateHeader := func() {
		defer waitgroup.Done()
		userFromGoogle, validateHeaderErr = u.validateHeader(ctx, authHeader)
	}

	// check for the owner's ID optimistically
	// and then match it to the auth header's
	// if it's wrong, we'll need to do more auth checks to see which error to return
	// but if it's right then we'll save some time
	getOwner := func() {
		defer waitgroup.Done()
		_, getOwnerErr = u.getUser(ctx, ownerID)
	}

	go validateHeader()
	go getOwner()

	waitgroup.Wait()

	if validateHeaderErr != nil {
		return api.WrapError(validateHeaderErr, "Failed to validate auth header")
	}

	if userFromGoogle.GoogleID != ownerID {
		if _, apiErr := u.getUser(ctx, userFromGoogle.GoogleID); apiErr != nil {
			return api.WrapError(apiErr, "Failed to find user account")
		}

		return api.CommitError(
			errors.New("Owner ID and user Google ID don't match"),
			auth.WrongOwnerCode,
			"The user requesting access doesn't match the owner")
	}

	if getOwnerErr != nil {
		return api.WrapError(getOwnerErr, "Failed to find user account")
	}

	return nil
}

// Authenticate resolves the auth header to an existing account
func (u Usecase) Authenticate(ctx context.Context, authHeader string) (userentity.User, *api.Error) {
	userFromGoogle, apiErr := u.validateHeader(ctx, authHeader)
	if apiErr != nil {
		return userentity.User{}, api.WrapError(apiErr, "Failed to validate auth header")
	}

	user, apiErr := u.getUser(ctx, userFromGoogle.GoogleID)
	if apiErr != nil {
		return userentity.User{}, api.WrapError(apiErr, "Failed to find user account")
	}

	return user, nil
}

// AuthenticateOwner is VerifyOwner for callers that also need the account,
// e.g. to apply admin visibility rules
func (u Usecase) AuthenticateOwner(ctx context.Context, authHeader string, ownerID string) (userentity.User, *api.Error) {
	user, apiErr := u.Authenticate(ctx, authHeader)
	if apiErr != nil {
		return userentity.User{}, apiErr
	}

	if user.ID != ownerID {
		return userentity.User{}, api.CommitError(
			errors.Newf("User %s is not the owner %s", user.ID, ownerID),
			auth.WrongOwnerCode,
			"The user requesting access doesn't match the owner")
	}

	return user, nil
}

func (u Usecase) VerifyAdmin(ctx context.Context, authHeader string) (userentity.User, *api.Error) {
	user, apiErr := u.Authenticate(ctx, authHeader)
	if apiErr != nil {
		return userentity.User{}, apiErr
	}

	if !user.Admin {
		return userentity.User{}, api.CommitError(
			errors.Newf("User %s is not an admin", user.ID),
			auth.NotAdminCode,
			"This action is only available to moderators")
	}

	return user, nil
}

// VerifyOwnerOrAdmin passes for the resource owner and for any admin
func (u Usecase) VerifyOwnerOrAdmin(ctx context.Context, authHeader string, ownerID string) *api.Error {
	user, apiErr := u.Authenticate(ctx, authHeader)
	if apiErr != nil {
		return apiErr
	}

	if user.ID == ownerID || user.Admin {
		return nil
	}

	return api.CommitError(
		errors.New("User is neither the owner nor an admin"),
		auth.WrongOwnerCode,
		"The user requesting access doesn't match the owner")
}

// Login signs the user in, creating the account on first sign in
func (u Usecase) Login(ctx context.Context, authHeader string) (userentity.User, *api.Error) {
	userFromGoogle, apiErr := u.validateHeader(ctx, authHeader)
	if apiErr != nil {
		return userentity.User{}, api.WrapError(apiErr, "Failed to validate auth header")
	}

	userFromDB, apiErr := u.getUser(ctx, userFromGoogle.GoogleID)
	if apiErr == nil {
		return userFromDB, nil
	}

	if apiErr.ErrorCode != auth.NoAccountCode {
		return userentity.User{}, api.WrapError(apiErr, "Failed to fetch user")
	}

	newUser, err := u.addUser(ctx, userFromGoogle)
	if err != nil {
		log.WithError(err).
			WithField("user_id", userFromGoogle.GoogleID).
			Error("Failed to add user on first login")

		return userentity.User{}, api.CommitError(err,
			api.DefaultErrorCode,
			"Your account could not be created. Please try again")
	}

	return newUser, nil
}

func (u Usecase) GetUser(ctx context.Context, authHeader string, userID string) (userentity.User, *api.Error) {
	if apiErr := u.VerifyOwner(ctx, authHeader, userID); apiErr != nil {
		return userentity.User{}, api.WrapError(apiErr, "Cannot verify the account owner")
	}

	return u.getUser(ctx, userID)
}

func (u Usecase) UpdateProfile(ctx context.Context, authHeader string, userID string, profile userentity.Profile) (userentity.User, *api.Error) {
	if apiErr := u.VerifyOwner(ctx, authHeader, userID); apiErr != nil {
		return userentity.User{}, api.WrapError(apiErr, "Cannot verify the account owner")
	}

	profile.Name = strings.TrimSpace(profile.Name)
	profile.Phone = strings.TrimSpace(profile.Phone)

	if err := validate.Struct(profile); err != nil {
		return userentity.User{}, api.CommitError(errors.Wrap(err, "Profile failed validation"),
			usererrors.BadUserDataCode,
			"The profile is missing a name or has a malformed phone number")
	}

	updatedUser, err := u.db.UpdateProfile(ctx, userID, profile)
	if err != nil {
		return userentity.User{}, u.storageError(errors.Wrap(err, "Failed to update profile"))
	}

	return updatedUser, nil
}

// DeleteUser removes only the account record, callers own the cleanup of
// anything else the user created
func (u Usecase) DeleteUser(ctx context.Context, userID string) *api.Error {
	if err := u.db.DeleteUser(ctx, userID); err != nil {
		return u.storageError(errors.Wrap(err, "Failed to delete user"))
	}

	return nil
}

func (u Usecase) addUser(ctx context.Context, googleUser google_id.User) (userentity.User, error) {
	createdAt := time.Now().UTC().Truncate(time.Second)
	newUser := userentity.User{
		ID:        googleUser.GoogleID,
		Name:      googleUser.Name,
		Email:     googleUser.Email,
		Admin:     false,
		CreatedAt: &createdAt,
	}

	err := u.db.CreateUser(ctx, newUser)
	if err != nil {
		// two first logins raced, the other one already created the account
		if markers.Is(err, userstorage.UserAlreadyExistsMark) {
			return u.db.GetUser(ctx, newUser.ID)
		}

		return userentity.User{}, errors.Wrap(err, "Failed to create user")
	}

	return newUser, nil
}

func (u Usecase) getUser(ctx context.Context, userID string) (userentity.User, *api.Error) {
	userFromDB, err := u.db.GetUser(ctx, userID)
	if err != nil {
		return userentity.User{}, u.storageError(err)
	}

	return userFromDB, nil
}

func (u Usecase) storageError(err error) *api.Error {
	switch {
	case markers.Is(err, userstorage.UserNotFoundMark):
		return api.CommitError(err,
			auth.NoAccountCode,
			"A Karasai account could not be found for this user")

	case markers.Is(err, userstorage.DefaultErrorMark):
		fallthrough
	default:
		return api.CommitError(err,
			api.DefaultErrorCode,
			"User information could not be retrieved")
	}
}

func (u Usecase) validateHeader(ctx context.Context, header string) (google_id.User, *api.Error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return google_id.User{}, api.CommitError(
			errors.New("Auth header doesn't have the bearer prefix"),
			auth.BadAuthorizationHeaderCode,
			"Authorization header has unexpected shape")
	}

	token := strings.TrimPrefix(header, bearerPrefix)
	userFromGoogle, err := u.googleValidator.ValidateToken(ctx, token)
	if err != nil {
		err = errors.Wrap(err, "Failed to validate Google ID token")
		switch {
		case markers.Is(err, google_id.NotValidatedMark):
			return google_id.User{}, api.CommitError(err,
				auth.NotGoogleAuthorizedCode,
				"Your Google login doesn't seem to be valid. Please try again")

		case markers.Is(err, google_id.UnverifiedEmailMark):
			return google_id.User{}, api.CommitError(err,
				auth.NotGoogleAuthorizedCode,
				"Please verify your Google account email before signing in")

		case markers.Is(err, google_id.MalformedClaimsMark):
			fallthrough
		default:
			return google_id.User{}, api.CommitError(err,
				api.DefaultErrorCode,
				"Unknown error: Couldn't verify your Google login status")
		}
	}
	return userFromGoogle, nil
}
