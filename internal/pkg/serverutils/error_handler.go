package serverutils

import (
	"errors"

	"campus-share-be/pkg/catalogerr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the standard
// response envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		body := ErrorResponse(code, err.Error())

		var verr *ValidationError
		if errors.As(err, &verr) {
			body.Data = verr.Fields
		}
		return ctx.Status(code).JSON(body)
	}
}

// StatusFor maps library errors to HTTP status codes.
func StatusFor(err error) int {
	var ferr *fiber.Error
	var verr *ValidationError
	switch {
	case errors.As(err, &ferr):
		return ferr.Code
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, catalogerr.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, catalogerr.ErrInvalidRating),
		errors.Is(err, catalogerr.ErrNavigationOutOfBounds),
		errors.Is(err, catalogerr.ErrBlankPlacement):
		return fiber.StatusBadRequest
	case errors.Is(err, catalogerr.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, catalogerr.ErrExternalService):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
