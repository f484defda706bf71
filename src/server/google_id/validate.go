package google_id

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/domains"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
	"google.golang.org/api/idtoken"
)

var (
	NotValidatedMark    = domains.New("not_google_validated")
	MalformedClaimsMark = domains.New("malformed_google_claims")
	UnverifiedEmailMark = domains.New("unverified_google_email")
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 . Validator
type Validator interface {
	ValidateToken(ctx context.Context, requestToken string) (User, error)
}

// User is the identity a Google ID token vouches for. GoogleID doubles as
// the Karasai user ID.
type User struct {
	GoogleID string
	Name     string
	Email    string
}

var _ Validator = GoogleValidator{}

type GoogleValidator struct {
	ClientID string
}

func (g GoogleValidator) ValidateToken(ctx context.Context, requestToken string) (User, error) {
	payload, err := idtoken.Validate(ctx, requestToken, g.ClientID)
	if err != nil {
		return User{}, mark.Wrap(err, NotValidatedMark, "Token could not be validated")
	}

	claims := tokenClaims(payload.Claims)

	user := User{}
	if user.GoogleID, err = claims.required("sub"); err != nil {
		return User{}, err
	}

	if user.Name, err = claims.optional("name"); err != nil {
		return User{}, err
	}

	if user.Email, err = claims.optional("email"); err != nil {
		return User{}, err
	}

	// listing owners are contacted by email, so it has to be one Google checked
	if user.Email != "" {
		if verified, ok := claims["email_verified"].(bool); ok && !verified {
			err := errors.Newf("Email %s is not verified by Google", user.Email)
			return User{}, mark.Wrap(err, UnverifiedEmailMark, "Google account email is unverified")
		}
	}

	return user, nil
}

type tokenClaims map[string]any

func (t tokenClaims) required(key string) (string, error) {
	value, present, err := t.lookup(key)
	if err != nil {
		return "", err
	}

	if !present || value == "" {
		err := errors.Newf("Claim %s is missing", key)
		return "", mark.Wrap(err, MalformedClaimsMark, "Token is missing a required claim")
	}

	return value, nil
}

func (t tokenClaims) optional(key string) (string, error) {
	value, _, err := t.lookup(key)
	return value, err
}

func (t tokenClaims) lookup(key string) (string, bool, error) {
	raw, present := t[key]
	if !present {
		return "", false, nil
	}

	value, isString := raw.(string)
	if !isString {
		err := errors.Newf("Claim %s holds a %T", key, raw)
		return "", true, mark.Wrap(err, MalformedClaimsMark, "Token has a malformed claim")
	}

	return value, true, nil
}
