package usererrors

import "github.com/karasai/karasai-be/src/server/internal/errors/api"

const (
	BadUserDataCode = api.ErrorCode("bad_user_data")
)
