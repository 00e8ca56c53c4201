package rutinaController

import (
	"context"
	"errors"
	"time"

	"rutinas/internal/database"
	. "rutinas/internal/models"
	"rutinas/internal/repositories"
	"rutinas/internal/services"
	"rutinas/internal/types"
	"rutinas/internal/utils"
	"rutinas/pkg/logger"

	"gorm.io/gorm"
)

const (
	msgRutinaNotFound = "Rutina no encontrada"
	msgRutinaDeleted  = "Rutina eliminada correctamente"
	msgNombreRequired = "nombre: field required"
	msgNombreNotNull  = "nombre: must not be null"
	msgPorDiaNotNull  = "ejercicioXdia: must not be null"
	msgReadFailed     = "Error interno al obtener las rutinas"
	msgCreateFailed   = "Error interno al crear la rutina"
	msgUpdateFailed   = "Error interno al actualizar la rutina"
	msgDeleteFailed   = "Error interno al eliminar la rutina"
)

type RutinaController struct {
	rutinaRepo         repositories.RutinaRepository
	transactionService *services.TransactionService
	log                logger.Logger
}

type CreateRutinaRequest struct {
	Nombre        string  `json:"nombre"        validate:"required"`
	Descripcion   *string `json:"descripcion"`
	EjercicioXDia *string `json:"ejercicioXdia" validate:"required"`
}

// UpdateRutinaRequest is a partial update. Fields, when set, lists the keys
// the client sent; without it every non-nil pointer counts as sent.
type UpdateRutinaRequest struct {
	Nombre        *string      `json:"nombre"        validate:"omitempty,min=1"`
	Descripcion   *string      `json:"descripcion"`
	EjercicioXDia *string      `json:"ejercicioXdia"`
	Fields        utils.Fields `json:"-"`
}

type DeleteRutinaResponse struct {
	Detail string `json:"detail"`
}

type RutinaControllerInterface interface {
	GetRutinas(ctx context.Context) ([]*Rutina, error)
	GetRutina(ctx context.Context, id int) (*Rutina, error)
	SearchRutinas(ctx context.Context, nombre string) ([]*Rutina, error)
	CreateRutina(ctx context.Context, request *CreateRutinaRequest) (*Rutina, error)
	UpdateRutina(ctx context.Context, id int, request *UpdateRutinaRequest) (*Rutina, error)
	DeleteRutina(ctx context.Context, id int) (*DeleteRutinaResponse, error)
}

func New(repos repositories.Repository, services services.Service) RutinaControllerInterface {
	return &RutinaController{
		rutinaRepo:         repos.Rutina,
		transactionService: services.Transaction,
		log:                logger.New("rutinaController"),
	}
}

func (c *RutinaController) GetRutinas(ctx context.Context) ([]*Rutina, error) {
	log := c.log.TraceFromContext(ctx).Function("GetRutinas")

	var rutinas []*Rutina
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		rutinas, err = c.rutinaRepo.GetAll(ctx, tx)
		return err
	})
	if err != nil {
		return nil, types.Internal(msgReadFailed, log.Err("failed to get rutinas", err))
	}

	return ensureEjercicios(rutinas), nil
}

func (c *RutinaController) GetRutina(ctx context.Context, id int) (*Rutina, error) {
	log := c.log.TraceFromContext(ctx).Function("GetRutina")

	var rutina *Rutina
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		rutina, err = c.rutinaRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("Rutina not found", "id", id)
			return nil, types.NotFound(msgRutinaNotFound)
		}
		return nil, types.Internal(msgReadFailed, log.Err("failed to get rutina", err, "id", id))
	}

	return rutina, nil
}

// SearchRutinas returns routines whose name contains nombre. Matching is a
// literal, case-sensitive substring on every supported store.
func (c *RutinaController) SearchRutinas(ctx context.Context, nombre string) ([]*Rutina, error) {
	log := c.log.TraceFromContext(ctx).Function("SearchRutinas")

	nombre, cleaned := utils.CleanText(nombre)
	if cleaned {
		log.Debug("Removed invalid characters from search query")
	}
	if nombre == "" {
		return nil, types.Validation(msgNombreRequired)
	}

	var rutinas []*Rutina
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		rutinas, err = c.rutinaRepo.SearchByNombre(ctx, tx, nombre)
		return err
	})
	if err != nil {
		return nil, types.Internal(msgReadFailed, log.Err("failed to search rutinas", err, "nombre", nombre))
	}

	return ensureEjercicios(rutinas), nil
}

func (c *RutinaController) CreateRutina(
	ctx context.Context,
	request *CreateRutinaRequest,
) (*Rutina, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateRutina")

	if message, err := utils.ValidateStruct(request); err != nil || message != "" {
		if err != nil {
			return nil, types.Internal(msgCreateFailed, log.Err("failed to validate request", err))
		}
		return nil, types.Validation(message)
	}

	rutina := &Rutina{
		RutinaFields: RutinaFields{
			Nombre:        request.Nombre,
			Descripcion:   request.Descripcion,
			EjercicioXDia: *request.EjercicioXDia,
		},
		FechaCreacion: time.Now().UTC(),
		Ejercicios:    []Ejercicio{},
	}

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.rutinaRepo.Create(ctx, tx, rutina)
	})
	if err != nil {
		// Duplicate names stay a server error, matching the established API.
		if database.IsDuplicateKey(err) {
			log.Warn("Rutina nombre already exists", "nombre", request.Nombre)
		}
		return nil, types.Internal(msgCreateFailed, log.Err("failed to create rutina", err, "nombre", request.Nombre))
	}

	log.Info("Rutina created successfully", "id", rutina.ID)
	return rutina, nil
}

func (c *RutinaController) UpdateRutina(
	ctx context.Context,
	id int,
	request *UpdateRutinaRequest,
) (*Rutina, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateRutina")

	updates, validationErr := c.buildUpdates(request)
	if validationErr != nil {
		return nil, validationErr
	}

	var rutina *Rutina
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		exists, err := c.rutinaRepo.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return types.NotFound(msgRutinaNotFound)
		}

		if err := c.rutinaRepo.Update(ctx, tx, id, updates); err != nil {
			return err
		}

		rutina, err = c.rutinaRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		if types.KindOf(err) == types.KindNotFound {
			return nil, err
		}
		if database.IsDuplicateKey(err) {
			log.Warn("Rutina nombre already exists", "id", id)
		}
		return nil, types.Internal(msgUpdateFailed, log.Err("failed to update rutina", err, "id", id))
	}

	log.Info("Rutina updated successfully", "id", id, "fields", len(updates))
	return rutina, nil
}

func (c *RutinaController) buildUpdates(request *UpdateRutinaRequest) (map[string]any, error) {
	if message, err := utils.ValidateStruct(request); err != nil || message != "" {
		if err != nil {
			return nil, types.Internal(msgUpdateFailed, err)
		}
		return nil, types.Validation(message)
	}

	sent := func(key string, set bool) bool {
		if request.Fields == nil {
			return set
		}
		return request.Fields.Has(key)
	}

	updates := make(map[string]any)

	if sent("nombre", request.Nombre != nil) {
		if request.Nombre == nil {
			return nil, types.Validation(msgNombreNotNull)
		}
		updates["nombre"] = *request.Nombre
	}
	if sent("descripcion", request.Descripcion != nil) {
		updates["descripcion"] = request.Descripcion
	}
	if sent("ejercicioXdia", request.EjercicioXDia != nil) {
		if request.EjercicioXDia == nil {
			return nil, types.Validation(msgPorDiaNotNull)
		}
		updates["ejercicio_x_dia"] = *request.EjercicioXDia
	}

	return updates, nil
}

func (c *RutinaController) DeleteRutina(ctx context.Context, id int) (*DeleteRutinaResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("DeleteRutina")

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.rutinaRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound(msgRutinaNotFound)
		}
		return nil, types.Internal(msgDeleteFailed, log.Err("failed to delete rutina", err, "id", id))
	}

	log.Info("Rutina deleted successfully", "id", id)
	return &DeleteRutinaResponse{Detail: msgRutinaDeleted}, nil
}

func ensureEjercicios(rutinas []*Rutina) []*Rutina {
	if rutinas == nil {
		return []*Rutina{}
	}
	for _, rutina := range rutinas {
		rutina.EnsureEjercicios()
	}
	return rutinas
}
