package verificationerrors

import "github.com/karasai/karasai-be/src/server/internal/errors/api"

const (
	BadVerificationQueryCode = api.ErrorCode("bad_verification_query")
	InvalidCertificateCode   = api.ErrorCode("invalid_certificate")
)
