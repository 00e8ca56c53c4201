package repositories

import (
	"context"
	"errors"

	"rutinas/config"
	"rutinas/internal/database"
	. "rutinas/internal/models"
	"rutinas/pkg/logger"

	"gorm.io/gorm"
)

type RutinaRepository interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]*Rutina, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Rutina, error)
	Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error)
	SearchByNombre(ctx context.Context, tx *gorm.DB, nombre string) ([]*Rutina, error)
	Create(ctx context.Context, tx *gorm.DB, rutina *Rutina) error
	Update(ctx context.Context, tx *gorm.DB, id int, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type rutinaRepository struct{}

func NewRutinaRepository() RutinaRepository {
	return &rutinaRepository{}
}

// withEjercicios loads every routine's exercises in one batched query
func withEjercicios(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Ejercicios", func(db *gorm.DB) *gorm.DB {
		return db.Order("ejercicio.id ASC")
	})
}

// nombreContains matches a literal, case-sensitive substring of nombre.
// LIKE is avoided because its case folding differs between stores and it
// treats % and _ in the query as wildcards.
func nombreContains(tx *gorm.DB) string {
	if database.Dialect(tx) == config.DriverPostgres {
		return "strpos(rutina.nombre, ?) > 0"
	}
	return "instr(rutina.nombre, ?) > 0"
}

func (r *rutinaRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]*Rutina, error) {
	log := logger.NewWithContext(ctx, "rutinaRepository").Function("GetAll")

	rutinas := []*Rutina{}
	if err := withEjercicios(tx.WithContext(ctx)).
		Order("rutina.id ASC").
		Find(&rutinas).Error; err != nil {
		return nil, log.Err("failed to get rutinas", err)
	}

	return rutinas, nil
}

func (r *rutinaRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Rutina, error) {
	log := logger.NewWithContext(ctx, "rutinaRepository").Function("GetByID")

	var rutina Rutina
	if err := withEjercicios(tx.WithContext(ctx)).
		First(&rutina, "rutina.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, log.Err("failed to get rutina", err, "id", id)
	}

	rutina.EnsureEjercicios()
	return &rutina, nil
}

func (r *rutinaRepository) Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	log := logger.NewWithContext(ctx, "rutinaRepository").Function("Exists")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&Rutina{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, log.Err("failed to check rutina existence", err, "id", id)
	}

	return count > 0, nil
}

func (r *rutinaRepository) SearchByNombre(
	ctx context.Context,
	tx *gorm.DB,
	nombre string,
) ([]*Rutina, error) {
	log := logger.NewWithContext(ctx, "rutinaRepository").Function("SearchByNombre")

	rutinas := []*Rutina{}
	if err := withEjercicios(tx.WithContext(ctx)).
		Where(nombreContains(tx), nombre).
		Order("rutina.id ASC").
		Find(&rutinas).Error; err != nil {
		return nil, log.Err("failed to search rutinas", err, "nombre", nombre)
	}

	log.Debug("Rutinas search completed", "nombre", nombre, "count", len(rutinas))
	return rutinas, nil
}

func (r *rutinaRepository) Create(ctx context.Context, tx *gorm.DB, rutina *Rutina) error {
	log := logger.NewWithContext(ctx, "rutinaRepository").Function("Create")

	if err := tx.WithContext(ctx).Omit("Ejercicios").Create(rutina).Error; err != nil {
		return log.Err("failed to create rutina", err, "nombre", rutina.Nombre)
	}

	log.Info("Rutina created", "id", rutina.ID, "nombre", rutina.Nombre)
	return nil
}

func (r *rutinaRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	updates map[string]any,
) error {
	log := logger.NewWithContext(ctx, "rutinaRepository").Function("Update")

	if len(updates) == 0 {
		return nil
	}

	result := tx.WithContext(ctx).
		Model(&Rutina{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return log.Err("failed to update rutina", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Delete removes the routine's exercises and then the routine itself. The
// foreign key also cascades, but stores without enforced foreign keys rely on
// the explicit first step.
func (r *rutinaRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := logger.NewWithContext(ctx, "rutinaRepository").Function("Delete")

	ejercicios := tx.WithContext(ctx).
		Where("rutina_id = ?", id).
		Delete(&Ejercicio{})
	if ejercicios.Error != nil {
		return log.Err("failed to delete rutina ejercicios", ejercicios.Error, "id", id)
	}

	result := tx.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Rutina{})
	if result.Error != nil {
		return log.Err("failed to delete rutina", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	log.Info("Rutina deleted", "id", id, "ejercicios", ejercicios.RowsAffected)
	return nil
}
