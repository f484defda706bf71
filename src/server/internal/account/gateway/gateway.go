package accountgateway

import (
	"net/http"

	"github.com/karasai/karasai-be/src/server/internal/account/usecase"
	"github.com/karasai/karasai-be/src/server/internal/errors/gateway"
	"github.com/karasai/karasai-be/src/server/internal/lib/request"
	"github.com/labstack/echo/v4"
)

type Gateway struct {
	usecase accountusecase.Usecase
}

func NewGateway(usecase accountusecase.Usecase) Gateway {
	return Gateway{
		usecase: usecase,
	}
}

func (g Gateway) DeleteAccount(c echo.Context, userID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	apiErr = g.usecase.DeleteAccount(ctx, authHeader, userID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.NoContent(http.StatusOK)
}
