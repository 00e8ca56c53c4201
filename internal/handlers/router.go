package handlers

import (
	"errors"

	"rutinas/internal/app"
	"rutinas/internal/types"
	"rutinas/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const (
	rootMessage      = "API de Gestión de Rutinas de Ejercicio"
	msgInvalidBody   = "Cuerpo de la solicitud inválido"
	msgInvalidID     = "El identificador debe ser un número entero"
	msgInternalError = "Error interno del servidor"
)

type Handler struct {
	log    logger.Logger
	router fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": rootMessage})
	})

	api := router.Group("/api")
	HealthHandler(api, app)
	NewRutinaHandler(*app, api).Register()
	NewEjercicioHandler(*app, api).Register()

	return nil
}

// respondError writes err as {"detail": ...} with the status matching its kind
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch types.KindOf(err) {
	case types.KindNotFound:
		status = fiber.StatusNotFound
	case types.KindValidation:
		status = fiber.StatusUnprocessableEntity
	default:
		log.Er("Request failed", err, "path", c.Path())
	}

	return c.Status(status).JSON(fiber.Map{
		"detail": types.MessageOf(err, msgInternalError),
	})
}

func paramID(c *fiber.Ctx, name string) (int, error) {
	id, err := c.ParamsInt(name)
	if err != nil {
		return 0, types.Validation(msgInvalidID)
	}
	return id, nil
}

// parseBody decodes a JSON request body into out. An empty body leaves out
// untouched when allowEmpty is set. Bodies sent without a Content-Type are
// decoded as JSON.
func parseBody(c *fiber.Ctx, out any, allowEmpty bool) error {
	if allowEmpty && len(c.Body()) == 0 {
		return nil
	}
	if c.Get(fiber.HeaderContentType) == "" {
		if err := c.App().Config().JSONDecoder(c.Body(), out); err != nil {
			return types.Validation(msgInvalidBody)
		}
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusUnprocessableEntity {
			return types.Validation(msgInvalidBody + ": se esperaba application/json")
		}
		return types.Validation(msgInvalidBody)
	}
	return nil
}
