package usergateway

import (
	"net/http"

	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/gateway"
	"github.com/karasai/karasai-be/src/server/internal/lib/request"
	"github.com/karasai/karasai-be/src/server/internal/user/entity"
	"github.com/karasai/karasai-be/src/server/internal/user/errors"
	"github.com/karasai/karasai-be/src/server/internal/user/usecase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type Gateway struct {
	usecase userusecase.Usecase
}

func NewGateway(usecase userusecase.Usecase) Gateway {
	return Gateway{
		usecase: usecase,
	}
}

type UserJSON = userentity.User

func (g Gateway) Login(c echo.Context) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	user, apiErr := g.usecase.Login(ctx, authHeader)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, user)
}

func (g Gateway) GetUser(c echo.Context, userID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	user, apiErr := g.usecase.GetUser(ctx, authHeader, userID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, user)
}

func (g Gateway) UpdateProfile(c echo.Context, userID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	profile := userentity.Profile{}
	if err := c.Bind(&profile); err != nil {
		err = errors.Wrap(err, "Failed to bind request body to profile object")
		apiErr := api.CommitError(err,
			usererrors.BadUserDataCode,
			"The profile data received was malformed")
		return gateway.ErrorResponse(c, apiErr)
	}

	user, apiErr := g.usecase.UpdateProfile(ctx, authHeader, userID, profile)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, user)
}
