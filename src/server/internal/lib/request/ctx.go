package request

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/auth"
	"github.com/karasai/karasai-be/src/shared/lib/env"
	"github.com/labstack/echo/v4"
)

func Context(c echo.Context) context.Context {
	switch env.Get() {
	case env.Production, env.Test:
		return c.Request().Context()

	case env.Development:
		// opt to not use the request context in development situations
		// to avoid timeouts during debugging
		return context.Background()

	default:
		panic("Unrecognized environment")
	}
}

func AuthHeader(c echo.Context) (string, *api.Error) {
	header := OptionalAuthHeader(c)
	if header == "" {
		err := errors.New("No authorization header found")
		return "", api.CommitError(err,
			auth.BadAuthorizationHeaderCode,
			"The request is unauthorized. Please try logging in again")
	}

	return header, nil
}

// OptionalAuthHeader is for routes that serve anonymous visitors and
// signed in users differently
func OptionalAuthHeader(c echo.Context) string {
	return c.Request().Header.Get(echo.HeaderAuthorization)
}

// CommaList splits a comma separated query param, dropping empty entries
func CommaList(c echo.Context, name string) []string {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	values := []string{}
	for _, value := range strings.Split(raw, ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			values = append(values, value)
		}
	}

	return values
}
