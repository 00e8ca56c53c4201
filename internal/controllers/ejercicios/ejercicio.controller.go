package ejercicioController

import (
	"context"
	"errors"

	. "rutinas/internal/models"
	"rutinas/internal/repositories"
	"rutinas/internal/services"
	"rutinas/internal/types"
	"rutinas/internal/utils"
	"rutinas/pkg/logger"

	"gorm.io/gorm"
)

const (
	msgRutinaNotFound    = "Rutina no encontrada"
	msgEjercicioNotFound = "Ejercicio no encontrado"
	msgPesoPositive      = "peso: must be greater than 0"
	msgCreateFailed      = "Error interno al crear el ejercicio"
	msgUpdateFailed      = "Error interno al actualizar el ejercicio"
	msgDeleteFailed      = "Error interno al eliminar el ejercicio"
)

type EjercicioController struct {
	rutinaRepo         repositories.RutinaRepository
	ejercicioRepo      repositories.EjercicioRepository
	transactionService *services.TransactionService
	log                logger.Logger
}

type CreateEjercicioRequest struct {
	Nombre       string    `json:"nombre"       validate:"required"`
	DiaSemana    DiaSemana `json:"dia_semana"   validate:"required,dia_semana"`
	Series       *int      `json:"series"       validate:"required,gt=0"`
	Repeticiones *int      `json:"repeticiones" validate:"required,gt=0"`
	Peso         *Peso     `json:"peso"`
	Notas        *string   `json:"notas"`
	Orden        *int      `json:"orden"`
}

// UpdateEjercicioRequest is a partial update. Fields, when set, lists the keys
// the client sent so an explicit null can clear peso, notas or orden.
type UpdateEjercicioRequest struct {
	Nombre       *string      `json:"nombre"       validate:"omitempty,min=1"`
	DiaSemana    *DiaSemana   `json:"dia_semana"   validate:"omitempty,dia_semana"`
	Series       *int         `json:"series"       validate:"omitempty,gt=0"`
	Repeticiones *int         `json:"repeticiones" validate:"omitempty,gt=0"`
	Peso         *Peso        `json:"peso"`
	Notas        *string      `json:"notas"`
	Orden        *int         `json:"orden"`
	Fields       utils.Fields `json:"-"`
}

type EjercicioControllerInterface interface {
	AddEjercicio(
		ctx context.Context,
		rutinaID int,
		request *CreateEjercicioRequest,
	) (*Ejercicio, error)
	UpdateEjercicio(
		ctx context.Context,
		id int,
		request *UpdateEjercicioRequest,
	) (*Ejercicio, error)
	DeleteEjercicio(ctx context.Context, id int) error
}

func New(repos repositories.Repository, services services.Service) EjercicioControllerInterface {
	return &EjercicioController{
		rutinaRepo:         repos.Rutina,
		ejercicioRepo:      repos.Ejercicio,
		transactionService: services.Transaction,
		log:                logger.New("ejercicioController"),
	}
}

func (c *EjercicioController) AddEjercicio(
	ctx context.Context,
	rutinaID int,
	request *CreateEjercicioRequest,
) (*Ejercicio, error) {
	log := c.log.TraceFromContext(ctx).Function("AddEjercicio")

	if err := validateRequest(request, request.Peso, msgCreateFailed); err != nil {
		return nil, err
	}

	ejercicio := &Ejercicio{
		EjercicioFields: EjercicioFields{
			Nombre:       request.Nombre,
			DiaSemana:    request.DiaSemana,
			Series:       *request.Series,
			Repeticiones: *request.Repeticiones,
			Peso:         request.Peso,
			Notas:        request.Notas,
			Orden:        request.Orden,
		},
		RutinaID: rutinaID,
	}

	var total int64
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		exists, err := c.rutinaRepo.Exists(ctx, tx, rutinaID)
		if err != nil {
			return err
		}
		if !exists {
			return types.NotFound(msgRutinaNotFound)
		}

		if err := c.ejercicioRepo.Create(ctx, tx, ejercicio); err != nil {
			return err
		}

		total, err = c.ejercicioRepo.CountByRutina(ctx, tx, rutinaID)
		return err
	})
	if err != nil {
		if types.KindOf(err) == types.KindNotFound {
			log.Debug("Rutina not found", "rutinaID", rutinaID)
			return nil, err
		}
		return nil, types.Internal(
			msgCreateFailed,
			log.Err("failed to add ejercicio", err, "rutinaID", rutinaID),
		)
	}

	log.Info(
		"Ejercicio added successfully",
		"id", ejercicio.ID,
		"rutinaID", rutinaID,
		"ejercicios", total,
	)
	return ejercicio, nil
}

func (c *EjercicioController) UpdateEjercicio(
	ctx context.Context,
	id int,
	request *UpdateEjercicioRequest,
) (*Ejercicio, error) {
	log := c.log.TraceFromContext(ctx).Function("UpdateEjercicio")

	updates, validationErr := buildUpdates(request)
	if validationErr != nil {
		return nil, validationErr
	}

	var ejercicio *Ejercicio
	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := c.ejercicioRepo.GetByID(ctx, tx, id); err != nil {
			return err
		}

		if err := c.ejercicioRepo.Update(ctx, tx, id, updates); err != nil {
			return err
		}

		var err error
		ejercicio, err = c.ejercicioRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("Ejercicio not found", "id", id)
			return nil, types.NotFound(msgEjercicioNotFound)
		}
		return nil, types.Internal(
			msgUpdateFailed,
			log.Err("failed to update ejercicio", err, "id", id),
		)
	}

	log.Info("Ejercicio updated successfully", "id", id, "fields", len(updates))
	return ejercicio, nil
}

func (c *EjercicioController) DeleteEjercicio(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteEjercicio")

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.ejercicioRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Debug("Ejercicio not found", "id", id)
			return types.NotFound(msgEjercicioNotFound)
		}
		return types.Internal(msgDeleteFailed, log.Err("failed to delete ejercicio", err, "id", id))
	}

	log.Info("Ejercicio deleted successfully", "id", id)
	return nil
}

func validateRequest(request any, peso *Peso, failure string) error {
	message, err := utils.ValidateStruct(request)
	if err != nil {
		return types.Internal(failure, err)
	}
	if peso != nil && !peso.IsPositive() {
		if message != "" {
			message += "; "
		}
		message += msgPesoPositive
	}
	if message != "" {
		return types.Validation(message)
	}
	return nil
}

func buildUpdates(request *UpdateEjercicioRequest) (map[string]any, error) {
	if err := validateRequest(request, request.Peso, msgUpdateFailed); err != nil {
		return nil, err
	}

	sent := func(key string, set bool) bool {
		if request.Fields == nil {
			return set
		}
		return request.Fields.Has(key)
	}
	required := func(key string, set bool) error {
		if !set {
			return types.Validation(key + ": must not be null")
		}
		return nil
	}

	updates := make(map[string]any)

	if sent("nombre", request.Nombre != nil) {
		if err := required("nombre", request.Nombre != nil); err != nil {
			return nil, err
		}
		updates["nombre"] = *request.Nombre
	}
	if sent("dia_semana", request.DiaSemana != nil) {
		if err := required("dia_semana", request.DiaSemana != nil); err != nil {
			return nil, err
		}
		updates["dia_semana"] = string(*request.DiaSemana)
	}
	if sent("series", request.Series != nil) {
		if err := required("series", request.Series != nil); err != nil {
			return nil, err
		}
		updates["series"] = *request.Series
	}
	if sent("repeticiones", request.Repeticiones != nil) {
		if err := required("repeticiones", request.Repeticiones != nil); err != nil {
			return nil, err
		}
		updates["repeticiones"] = *request.Repeticiones
	}
	if sent("peso", request.Peso != nil) {
		updates["peso"] = request.Peso
	}
	if sent("notas", request.Notas != nil) {
		updates["notas"] = request.Notas
	}
	if sent("orden", request.Orden != nil) {
		updates["orden"] = request.Orden
	}

	return updates, nil
}
