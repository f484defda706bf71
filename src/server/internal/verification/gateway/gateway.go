package verificationgateway

import (
	"net/http"

	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/gateway"
	"github.com/karasai/karasai-be/src/server/internal/lib/request"
	"github.com/karasai/karasai-be/src/server/internal/verification/entity"
	"github.com/karasai/karasai-be/src/server/internal/verification/errors"
	"github.com/karasai/karasai-be/src/server/internal/verification/usecase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type Gateway struct {
	usecase verificationusecase.Usecase
}

func NewGateway(usecase verificationusecase.Usecase) Gateway {
	return Gateway{
		usecase: usecase,
	}
}

func (g Gateway) Verify(c echo.Context) error {
	ctx := request.Context(c)

	query := verificationentity.Query{}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		err = errors.Wrap(err, "Failed to bind verification query")
		apiErr := api.CommitError(err,
			verificationerrors.BadVerificationQueryCode,
			"The verification query was malformed")
		return gateway.ErrorResponse(c, apiErr)
	}

	result, apiErr := g.usecase.Verify(ctx, query)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, result)
}

func (g Gateway) CheckCertificate(c echo.Context, token string) error {
	ctx := request.Context(c)

	status, apiErr := g.usecase.CheckCertificate(ctx, token)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, status)
}
