package repositories

import (
	"context"
	"errors"

	. "rutinas/internal/models"
	"rutinas/pkg/logger"

	"gorm.io/gorm"
)

type EjercicioRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Ejercicio, error)
	CountByRutina(ctx context.Context, tx *gorm.DB, rutinaID int) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, ejercicio *Ejercicio) error
	Update(ctx context.Context, tx *gorm.DB, id int, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type ejercicioRepository struct{}

func NewEjercicioRepository() EjercicioRepository {
	return &ejercicioRepository{}
}

func (r *ejercicioRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Ejercicio, error) {
	log := logger.NewWithContext(ctx, "ejercicioRepository").Function("GetByID")

	var ejercicio Ejercicio
	if err := tx.WithContext(ctx).First(&ejercicio, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, log.Err("failed to get ejercicio", err, "id", id)
	}

	return &ejercicio, nil
}

func (r *ejercicioRepository) CountByRutina(
	ctx context.Context,
	tx *gorm.DB,
	rutinaID int,
) (int64, error) {
	log := logger.NewWithContext(ctx, "ejercicioRepository").Function("CountByRutina")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&Ejercicio{}).
		Where("rutina_id = ?", rutinaID).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count ejercicios", err, "rutinaID", rutinaID)
	}

	return count, nil
}

func (r *ejercicioRepository) Create(ctx context.Context, tx *gorm.DB, ejercicio *Ejercicio) error {
	log := logger.NewWithContext(ctx, "ejercicioRepository").Function("Create")

	if err := tx.WithContext(ctx).Create(ejercicio).Error; err != nil {
		return log.Err(
			"failed to create ejercicio",
			err,
			"rutinaID", ejercicio.RutinaID,
			"nombre", ejercicio.Nombre,
		)
	}

	log.Info("Ejercicio created", "id", ejercicio.ID, "rutinaID", ejercicio.RutinaID)
	return nil
}

func (r *ejercicioRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	updates map[string]any,
) error {
	log := logger.NewWithContext(ctx, "ejercicioRepository").Function("Update")

	if len(updates) == 0 {
		return nil
	}

	result := tx.WithContext(ctx).
		Model(&Ejercicio{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return log.Err("failed to update ejercicio", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *ejercicioRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := logger.NewWithContext(ctx, "ejercicioRepository").Function("Delete")

	result := tx.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Ejercicio{})
	if result.Error != nil {
		return log.Err("failed to delete ejercicio", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	log.Info("Ejercicio deleted", "id", id)
	return nil
}
