package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/checkers-backend/internal/api"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Validate checks v against its validate struct tags and returns a readable
// summary of every failure, or nil.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var details strings.Builder
	for _, fe := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch fe.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			details.WriteString(fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			details.WriteString(fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(details.String())
}

// ValidateBody parses the JSON body into a fresh T, validates it and stores
// the result in Locals("body") as *T.
func ValidateBody[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(T)
		if err := c.BodyParser(body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse{
				Error:   "invalid request body",
				Code:    api.ErrInvalidRequest,
				Details: err.Error(),
			})
		}
		if err := Validate(body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(api.ErrorResponse{
				Error:   "validation failed",
				Code:    api.ErrInvalidRequest,
				Details: err.Error(),
			})
		}

		c.Locals("body", body)
		return c.Next()
	}
}
