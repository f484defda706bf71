package validate

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var structValidator = validator.New()

var _ echo.Validator = EchoValidator{}

// EchoValidator lets handlers call c.Validate on bound request bodies
type EchoValidator struct{}

func (EchoValidator) Validate(i any) error {
	return Struct(i)
}

func Struct(s any) error {
	return structValidator.Struct(s)
}

func Var(field any, tag string) error {
	return structValidator.Var(field, tag)
}
