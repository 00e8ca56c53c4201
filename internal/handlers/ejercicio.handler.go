package handlers

import (
	"rutinas/internal/app"
	ejercicioController "rutinas/internal/controllers/ejercicios"
	"rutinas/internal/types"
	"rutinas/internal/utils"
	"rutinas/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type EjercicioHandler struct {
	Handler
	ejercicioController ejercicioController.EjercicioControllerInterface
}

func NewEjercicioHandler(app app.App, router fiber.Router) *EjercicioHandler {
	log := logger.New("handlers").File("ejercicio_handler")
	return &EjercicioHandler{
		ejercicioController: app.Controllers.Ejercicio,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *EjercicioHandler) Register() {
	ejercicios := h.router.Group("/ejercicios")

	ejercicios.Post("/rutinas/:rutina_id/ejercicios", h.addEjercicio)
	ejercicios.Patch("/:id", h.updateEjercicio)
	ejercicios.Delete("/:id", h.deleteEjercicio)
}

func (h *EjercicioHandler) addEjercicio(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("addEjercicio")

	rutinaID, err := paramID(c, "rutina_id")
	if err != nil {
		return respondError(c, log, err)
	}

	var req ejercicioController.CreateEjercicioRequest
	if err := parseBody(c, &req, false); err != nil {
		log.Warn("Invalid request body", "error", err, "rutinaID", rutinaID)
		return respondError(c, log, err)
	}

	ejercicio, err := h.ejercicioController.AddEjercicio(c.UserContext(), rutinaID, &req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(ejercicio)
}

func (h *EjercicioHandler) updateEjercicio(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateEjercicio")

	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	fields, err := utils.ParseFields(c.Body())
	if err != nil {
		log.Warn("Invalid request body", "error", err, "id", id)
		return respondError(c, log, types.Validation(msgInvalidBody))
	}

	var req ejercicioController.UpdateEjercicioRequest
	if err := parseBody(c, &req, true); err != nil {
		log.Warn("Invalid request body", "error", err, "id", id)
		return respondError(c, log, err)
	}
	req.Fields = fields

	ejercicio, err := h.ejercicioController.UpdateEjercicio(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(ejercicio)
}

func (h *EjercicioHandler) deleteEjercicio(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteEjercicio")

	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.ejercicioController.DeleteEjercicio(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
