package gateway

import (
	"fmt"
	"net/http"

	"github.com/karasai/karasai-be/src/server/api_error"
	"github.com/karasai/karasai-be/src/server/internal/contact/errors"
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/auth"
	"github.com/karasai/karasai-be/src/server/internal/favorite/errors"
	"github.com/karasai/karasai-be/src/server/internal/listing/errors"
	"github.com/karasai/karasai-be/src/server/internal/user/errors"
	"github.com/karasai/karasai-be/src/server/internal/verification/errors"
	"github.com/labstack/echo/v4"
)

var httpStatusCodeMap = map[api.ErrorCode]int{
	api.DefaultErrorCode:                        http.StatusInternalServerError,
	auth.NotGoogleAuthorizedCode:                http.StatusUnauthorized,
	auth.NoAccountCode:                          http.StatusUnauthorized,
	auth.BadAuthorizationHeaderCode:             http.StatusBadRequest,
	auth.WrongOwnerCode:                         http.StatusForbidden,
	auth.NotAdminCode:                           http.StatusForbidden,
	usererrors.BadUserDataCode:                  http.StatusBadRequest,
	listingerrors.ListingNotFoundCode:           http.StatusNotFound,
	listingerrors.BadListingDataCode:            http.StatusBadRequest,
	listingerrors.BadSearchParamsCode:           http.StatusBadRequest,
	listingerrors.ImageLimitExceededCode:        http.StatusBadRequest,
	listingerrors.BadImageCode:                  http.StatusBadRequest,
	verificationerrors.BadVerificationQueryCode: http.StatusBadRequest,
	verificationerrors.InvalidCertificateCode:   http.StatusBadRequest,
	favoriteerrors.BadFavoriteDataCode:          http.StatusBadRequest,
	contacterrors.BadContactDataCode:            http.StatusBadRequest,
}

// StatusCode panics for codes without a mapping, every code must be listed above
func StatusCode(code api.ErrorCode) int {
	statusCode, ok := httpStatusCodeMap[code]
	if !ok {
		msg := fmt.Sprintf("Error code %s has no HTTP status code mapping", code)
		panic(msg)
	}

	return statusCode
}

func ErrorResponse(c echo.Context, err *api.Error) error {
	statusCode := StatusCode(err.ErrorCode)

	return c.JSON(statusCode, api_error.JSONAPIError{
		Code:         string(err.ErrorCode),
		Msg:          err.UserMessage,
		ErrorDetails: err.Error(),
	})
}
