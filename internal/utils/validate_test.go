package utils

import (
	"testing"

	"rutinas/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Nombre    string            `json:"nombre"     validate:"required"`
	DiaSemana models.DiaSemana  `json:"dia_semana" validate:"required,dia_semana"`
	Series    *int              `json:"series"     validate:"required,gt=0"`
	Alias     *string           `json:"alias"      validate:"omitempty,min=1"`
	Dia       *models.DiaSemana `json:"dia"        validate:"omitempty,dia_semana"`
}

func intPtr(i int) *int { return &i }

func TestValidateStruct(t *testing.T) {
	empty := ""
	badDia := models.DiaSemana("Lunes ")
	goodDia := models.DiaSabado

	tests := []struct {
		name     string
		request  sampleRequest
		contains []string
	}{
		{
			name:    "valid",
			request: sampleRequest{Nombre: "Press", DiaSemana: models.DiaMiercoles, Series: intPtr(3), Dia: &goodDia},
		},
		{
			name:     "missing fields",
			request:  sampleRequest{},
			contains: []string{"nombre: field required", "dia_semana: field required", "series: field required"},
		},
		{
			name:     "zero series",
			request:  sampleRequest{Nombre: "Press", DiaSemana: models.DiaLunes, Series: intPtr(0)},
			contains: []string{"series: must be greater than 0"},
		},
		{
			name:     "unknown day",
			request:  sampleRequest{Nombre: "Press", DiaSemana: "Monday", Series: intPtr(1)},
			contains: []string{"dia_semana: must be one of Lunes, Martes, Miércoles"},
		},
		{
			name:     "explicit empty optional",
			request:  sampleRequest{Nombre: "Press", DiaSemana: models.DiaLunes, Series: intPtr(1), Alias: &empty},
			contains: []string{"alias: must not be empty"},
		},
		{
			name:     "invalid optional day",
			request:  sampleRequest{Nombre: "Press", DiaSemana: models.DiaLunes, Series: intPtr(1), Dia: &badDia},
			contains: []string{"dia: must be one of"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message, err := ValidateStruct(tt.request)
			require.NoError(t, err)

			if len(tt.contains) == 0 {
				assert.Empty(t, message)
				return
			}
			for _, fragment := range tt.contains {
				assert.Contains(t, message, fragment)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields([]byte(`{"peso": null, "notas": "ok", "orden": 2}`))
	require.NoError(t, err)

	assert.True(t, fields.Has("peso"))
	assert.True(t, fields.Has("notas"))
	assert.False(t, fields.Has("series"))

	fields, err = ParseFields(nil)
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = ParseFields([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = ParseFields([]byte(` null `))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = ParseFields([]byte(`"peso"`))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = ParseFields([]byte(`{"peso": `))
	assert.Error(t, err)
}
