package handlers

import (
	"rutinas/internal/app"
	rutinaController "rutinas/internal/controllers/rutinas"
	"rutinas/internal/types"
	"rutinas/internal/utils"
	"rutinas/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type RutinaHandler struct {
	Handler
	rutinaController rutinaController.RutinaControllerInterface
}

func NewRutinaHandler(app app.App, router fiber.Router) *RutinaHandler {
	log := logger.New("handlers").File("rutina_handler")
	return &RutinaHandler{
		rutinaController: app.Controllers.Rutina,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *RutinaHandler) Register() {
	rutinas := h.router.Group("/rutinas")

	rutinas.Get("/", h.getRutinas)
	rutinas.Get("/buscar", h.searchRutinas)
	rutinas.Get("/:id", h.getRutina)
	rutinas.Post("/", h.createRutina)
	rutinas.Put("/:id", h.updateRutina)
	rutinas.Delete("/:id", h.deleteRutina)
}

func (h *RutinaHandler) getRutinas(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getRutinas")

	rutinas, err := h.rutinaController.GetRutinas(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(rutinas)
}

func (h *RutinaHandler) searchRutinas(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("searchRutinas")

	rutinas, err := h.rutinaController.SearchRutinas(c.UserContext(), c.Query("nombre"))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(rutinas)
}

func (h *RutinaHandler) getRutina(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getRutina")

	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	rutina, err := h.rutinaController.GetRutina(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(rutina)
}

func (h *RutinaHandler) createRutina(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createRutina")

	var req rutinaController.CreateRutinaRequest
	if err := parseBody(c, &req, false); err != nil {
		log.Warn("Invalid request body", "error", err)
		return respondError(c, log, err)
	}

	rutina, err := h.rutinaController.CreateRutina(c.UserContext(), &req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(rutina)
}

func (h *RutinaHandler) updateRutina(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateRutina")

	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	fields, err := utils.ParseFields(c.Body())
	if err != nil {
		log.Warn("Invalid request body", "error", err)
		return respondError(c, log, types.Validation(msgInvalidBody))
	}

	var req rutinaController.UpdateRutinaRequest
	if err := parseBody(c, &req, true); err != nil {
		log.Warn("Invalid request body", "error", err)
		return respondError(c, log, err)
	}
	req.Fields = fields

	rutina, err := h.rutinaController.UpdateRutina(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(rutina)
}

func (h *RutinaHandler) deleteRutina(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteRutina")

	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, log, err)
	}

	response, err := h.rutinaController.DeleteRutina(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(response)
}
