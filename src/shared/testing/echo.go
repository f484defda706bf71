package testing

import (
	"net/http"

	"github.com/karasai/karasai-be/src/shared/lib/validate"
	"github.com/labstack/echo/v4"
)

func PrepareEchoContext(request *http.Request, response http.ResponseWriter) echo.Context {
	e := echo.New()
	e.Validator = validate.EchoValidator{}
	return e.NewContext(request, response)
}
