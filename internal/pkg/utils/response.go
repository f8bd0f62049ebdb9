package utils

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/pkg/errors"
)

// ErrorResponse - error body shape shared by every endpoint
type ErrorResponse = errors.AppError

// SendJSON writes data as the response body with the given status.
func SendJSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

func SendOK(c *fiber.Ctx, data interface{}) error {
	return SendJSON(c, fiber.StatusOK, data)
}

func SendCreated(c *fiber.Ctx, data interface{}) error {
	return SendJSON(c, fiber.StatusCreated, data)
}

func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// SendError maps err onto the error body. Unknown errors become a generic 500
// and are logged with full detail.
func SendError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	if appErr, ok := errors.As(err); ok {
		if appErr.Code >= fiber.StatusInternalServerError && logger != nil {
			logger.Error("Request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("reason", appErr.Reason),
				zap.Error(err),
			)
		}
		return c.Status(appErr.Code).JSON(appErr)
	}

	if fe, ok := err.(*fiber.Error); ok {
		reason := errors.ErrMalformedRequest
		switch fe.Code {
		case fiber.StatusNotFound:
			reason = errors.ErrResourceNotFound
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		default:
			reason = errors.New("HTTP_ERROR", fe.Message, fe.Code)
		}
		return c.Status(fe.Code).JSON(errors.AppError{
			Code:    fe.Code,
			Reason:  reason.Reason,
			Message: fe.Message,
		})
	}

	if logger != nil {
		logger.Error("Unexpected error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(errors.ErrInternalServer)
}
