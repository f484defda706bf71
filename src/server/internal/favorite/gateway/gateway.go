package favoritegateway

import (
	"net/http"

	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/gateway"
	"github.com/karasai/karasai-be/src/server/internal/favorite/entity"
	"github.com/karasai/karasai-be/src/server/internal/favorite/errors"
	"github.com/karasai/karasai-be/src/server/internal/favorite/usecase"
	"github.com/karasai/karasai-be/src/server/internal/lib/request"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type Gateway struct {
	usecase favoriteusecase.Usecase
}

func NewGateway(usecase favoriteusecase.Usecase) Gateway {
	return Gateway{
		usecase: usecase,
	}
}

func (g Gateway) GetFavorites(c echo.Context, userID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	summaries, apiErr := g.usecase.GetFavorites(ctx, authHeader, userID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, summaries)
}

func (g Gateway) SaveFavorite(c echo.Context, userID string, listingID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	apiErr = g.usecase.SaveFavorite(ctx, authHeader, userID, listingID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.NoContent(http.StatusOK)
}

func (g Gateway) RemoveFavorite(c echo.Context, userID string, listingID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	apiErr = g.usecase.RemoveFavorite(ctx, authHeader, userID, listingID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.NoContent(http.StatusOK)
}

func (g Gateway) MergeGuestFavorites(c echo.Context, userID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	mergeRequest := favoriteentity.MergeRequest{}
	if err := c.Bind(&mergeRequest); err != nil {
		err = errors.Wrap(err, "Failed to bind request body to merge request")
		apiErr := api.CommitError(err,
			favoriteerrors.BadFavoriteDataCode,
			"The favorites received were malformed")
		return gateway.ErrorResponse(c, apiErr)
	}

	summaries, apiErr := g.usecase.MergeGuestFavorites(ctx, authHeader, userID, mergeRequest)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, summaries)
}
