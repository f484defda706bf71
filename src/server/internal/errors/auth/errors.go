package auth

import (
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
)

const (
	NotGoogleAuthorizedCode    = api.ErrorCode("failed_google_verification")
	NoAccountCode              = api.ErrorCode("no_account")
	WrongOwnerCode             = api.ErrorCode("wrong_owner")
	NotAdminCode               = api.ErrorCode("not_admin")
	BadAuthorizationHeaderCode = api.ErrorCode("bad_header")
)
