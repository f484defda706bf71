package contacterrors

import "github.com/karasai/karasai-be/src/server/internal/errors/api"

const (
	BadContactDataCode = api.ErrorCode("bad_contact_data")
)
