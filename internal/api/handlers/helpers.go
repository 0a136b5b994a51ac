package handlers

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/service"
)

var validate = validator.New()

func GetOperatorID(c *fiber.Ctx) string {
	operatorID, _ := c.Locals("operator_id").(string)
	return operatorID
}

// errorResponse maps pipeline errors onto HTTP statuses.
func errorResponse(c *fiber.Ctx, err error) error {
	var (
		invalidPlatform *service.InvalidPlatformError
		invalidArgument *service.InvalidArgumentError
		notFound        *service.NotFoundError
		generation      *service.ContentGenerationError
	)

	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &invalidPlatform), errors.As(err, &invalidArgument):
		status = fiber.StatusBadRequest
	case errors.As(err, &notFound):
		status = fiber.StatusNotFound
	case errors.As(err, &generation):
		status = fiber.StatusBadGateway
	default:
		slog.Error(err.Error())
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errors.New("Unable to parse json")
	}
	return validate.Struct(out)
}
