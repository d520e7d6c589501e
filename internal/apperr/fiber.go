package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler is the app wide fiber.ErrorHandler. Domain errors become their
// mapped status with {"message", "errors"}; fiber errors keep their code;
// anything else is logged and reported as 500.
func Handler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		status := Status(err)
		var e *Error
		if status == fiber.StatusInternalServerError || !errors.As(err, &e) {
			if log != nil {
				log.Error("request failed",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Error(err))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
		}

		body := fiber.Map{"message": e.Message}
		if len(e.Fields) > 0 {
			body["errors"] = e.Fields
		}
		return c.Status(status).JSON(body)
	}
}
