package contactgateway

import (
	"net/http"

	"github.com/karasai/karasai-be/src/server/internal/contact/entity"
	"github.com/karasai/karasai-be/src/server/internal/contact/errors"
	"github.com/karasai/karasai-be/src/server/internal/contact/usecase"
	"github.com/karasai/karasai-be/src/server/internal/errors/api"
	"github.com/karasai/karasai-be/src/server/internal/errors/gateway"
	"github.com/karasai/karasai-be/src/server/internal/lib/request"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type Gateway struct {
	usecase contactusecase.Usecase
}

func NewGateway(usecase contactusecase.Usecase) Gateway {
	return Gateway{
		usecase: usecase,
	}
}

func (g Gateway) Submit(c echo.Context) error {
	ctx := request.Context(c)

	submission := contactentity.Submission{}
	if err := c.Bind(&submission); err != nil {
		err = errors.Wrap(err, "Failed to bind request body to contact form")
		apiErr := api.CommitError(err,
			contacterrors.BadContactDataCode,
			"The contact form received was malformed")
		return gateway.ErrorResponse(c, apiErr)
	}

	if err := c.Validate(&submission); err != nil {
		err = errors.Wrap(err, "Contact form failed validation")
		apiErr := api.CommitError(err,
			contacterrors.BadContactDataCode,
			"The contact form is missing fields or has invalid values")
		return gateway.ErrorResponse(c, apiErr)
	}

	message, apiErr := g.usecase.Submit(ctx, submission)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, message)
}

func (g Gateway) GetInbox(c echo.Context, userID string) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	messages, apiErr := g.usecase.GetInbox(ctx, authHeader, userID)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, messages)
}
