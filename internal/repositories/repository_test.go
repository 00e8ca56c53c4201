package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"rutinas/config"
	"rutinas/internal/database"
	"rutinas/internal/models"
	"rutinas/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.New(config.Config{
		DatabaseDriver:  config.DriverSQLite,
		DatabasePath:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DatabaseRetries: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.MigrateModels())

	return db.SQL
}

func createRutina(t *testing.T, db *gorm.DB, nombre string) *models.Rutina {
	t.Helper()

	rutina := &models.Rutina{RutinaFields: models.RutinaFields{Nombre: nombre, EjercicioXDia: "{}"}}
	require.NoError(t, repositories.NewRutinaRepository().Create(context.Background(), db, rutina))
	return rutina
}

func createEjercicio(t *testing.T, db *gorm.DB, rutinaID int, nombre string) *models.Ejercicio {
	t.Helper()

	ejercicio := &models.Ejercicio{
		EjercicioFields: models.EjercicioFields{
			Nombre:       nombre,
			DiaSemana:    models.DiaLunes,
			Series:       3,
			Repeticiones: 12,
		},
		RutinaID: rutinaID,
	}
	require.NoError(t, repositories.NewEjercicioRepository().Create(context.Background(), db, ejercicio))
	return ejercicio
}

func TestRutinaRepository_CreateAssignsIncreasingIDs(t *testing.T) {
	db := newTestDB(t)

	first := createRutina(t, db, "Pierna A")
	second := createRutina(t, db, "Brazo")

	assert.Positive(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.FechaCreacion.IsZero())
}

func TestRutinaRepository_GetAllPreloadsEjercicios(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewRutinaRepository()

	pierna := createRutina(t, db, "Pierna A")
	brazo := createRutina(t, db, "Brazo")
	createEjercicio(t, db, pierna.ID, "Sentadilla")
	createEjercicio(t, db, pierna.ID, "Prensa")

	rutinas, err := repo.GetAll(ctx, db)
	require.NoError(t, err)
	require.Len(t, rutinas, 2)

	assert.Equal(t, pierna.ID, rutinas[0].ID)
	require.Len(t, rutinas[0].Ejercicios, 2)
	assert.Equal(t, "Sentadilla", rutinas[0].Ejercicios[0].Nombre)
	assert.Equal(t, "Prensa", rutinas[0].Ejercicios[1].Nombre)

	assert.Equal(t, brazo.ID, rutinas[1].ID)
	assert.Empty(t, rutinas[1].Ejercicios)
}

func TestRutinaRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewRutinaRepository()

	rutina := createRutina(t, db, "Full body")
	createEjercicio(t, db, rutina.ID, "Remo")

	found, err := repo.GetByID(ctx, db, rutina.ID)
	require.NoError(t, err)
	assert.Equal(t, "Full body", found.Nombre)
	require.Len(t, found.Ejercicios, 1)
	assert.Equal(t, rutina.ID, found.Ejercicios[0].RutinaID)

	_, err = repo.GetByID(ctx, db, rutina.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRutinaRepository_SearchByNombre(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewRutinaRepository()

	createRutina(t, db, "Pierna A")
	createRutina(t, db, "Piernas B")
	createRutina(t, db, "Brazo")
	createRutina(t, db, "100% cardio")

	tests := []struct {
		query    string
		expected []string
	}{
		{"Pierna", []string{"Pierna A", "Piernas B"}},
		{"pierna", []string{}},
		{"razo", []string{"Brazo"}},
		{"%", []string{"100% cardio"}},
		{"_", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rutinas, err := repo.SearchByNombre(ctx, db, tt.query)
			require.NoError(t, err)

			nombres := []string{}
			for _, rutina := range rutinas {
				nombres = append(nombres, rutina.Nombre)
			}
			assert.Equal(t, tt.expected, nombres)
		})
	}
}

func TestRutinaRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewRutinaRepository()

	rutina := createRutina(t, db, "Torso")

	require.NoError(t, repo.Update(ctx, db, rutina.ID, map[string]any{"descripcion": "Lunes y jueves"}))

	found, err := repo.GetByID(ctx, db, rutina.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Descripcion)
	assert.Equal(t, "Lunes y jueves", *found.Descripcion)
	assert.Equal(t, "Torso", found.Nombre)

	assert.ErrorIs(t, repo.Update(ctx, db, rutina.ID+1, map[string]any{"nombre": "x"}), gorm.ErrRecordNotFound)
	assert.NoError(t, repo.Update(ctx, db, rutina.ID, map[string]any{}))
}

func TestRutinaRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewRutinaRepository()
	ejercicioRepo := repositories.NewEjercicioRepository()

	rutina := createRutina(t, db, "Pierna A")
	other := createRutina(t, db, "Brazo")
	first := createEjercicio(t, db, rutina.ID, "Sentadilla")
	second := createEjercicio(t, db, rutina.ID, "Prensa")
	kept := createEjercicio(t, db, other.ID, "Curl")

	require.NoError(t, repo.Delete(ctx, db, rutina.ID))

	exists, err := repo.Exists(ctx, db, rutina.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	for _, id := range []int{first.ID, second.ID} {
		_, err := ejercicioRepo.GetByID(ctx, db, id)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	}

	_, err = ejercicioRepo.GetByID(ctx, db, kept.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, db, rutina.ID), gorm.ErrRecordNotFound)
}

func TestEjercicioRepository_UpdateAndClear(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewEjercicioRepository()

	rutina := createRutina(t, db, "Torso")
	ejercicio := createEjercicio(t, db, rutina.ID, "Press banca")

	peso := decimal.RequireFromString("80.5")
	notas := "bajar lento"
	require.NoError(t, repo.Update(ctx, db, ejercicio.ID, map[string]any{
		"peso":       models.NewPeso(peso),
		"notas":      notas,
		"dia_semana": models.DiaMiercoles,
	}))

	found, err := repo.GetByID(ctx, db, ejercicio.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Peso)
	assert.True(t, peso.Equal(found.Peso.Decimal))
	assert.Equal(t, models.DiaMiercoles, found.DiaSemana)
	assert.Equal(t, 3, found.Series)

	require.NoError(t, repo.Update(ctx, db, ejercicio.ID, map[string]any{"peso": nil}))

	found, err = repo.GetByID(ctx, db, ejercicio.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Peso)
	require.NotNil(t, found.Notas)
	assert.Equal(t, notas, *found.Notas)
}

func TestEjercicioRepository_DeleteAndCount(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewEjercicioRepository()

	rutina := createRutina(t, db, "Torso")
	ejercicio := createEjercicio(t, db, rutina.ID, "Press banca")
	createEjercicio(t, db, rutina.ID, "Remo")

	count, err := repo.CountByRutina(ctx, db, rutina.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.Delete(ctx, db, ejercicio.ID))
	assert.ErrorIs(t, repo.Delete(ctx, db, ejercicio.ID), gorm.ErrRecordNotFound)

	count, err = repo.CountByRutina(ctx, db, rutina.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
