package models

import (
	"time"

	"gorm.io/gorm"
)

// RutinaFields are the client-writable columns of a routine
type RutinaFields struct {
	Nombre        string  `gorm:"type:varchar(255);uniqueIndex:idx_rutina_nombre;not null" json:"nombre"`
	Descripcion   *string `gorm:"type:text"                                                 json:"descripcion"`
	EjercicioXDia string  `gorm:"column:ejercicio_x_dia;type:text;not null"                 json:"ejercicioXdia"`
}

type Rutina struct {
	BaseModel
	RutinaFields
	FechaCreacion time.Time   `gorm:"not null"                                       json:"fecha_creacion"`
	Ejercicios    []Ejercicio `gorm:"foreignKey:RutinaID;constraint:OnDelete:CASCADE" json:"ejercicios"`
}

func (Rutina) TableName() string {
	return "rutina"
}

func (r *Rutina) BeforeCreate(tx *gorm.DB) (err error) {
	if r.Nombre == "" {
		return gorm.ErrInvalidValue
	}
	if r.FechaCreacion.IsZero() {
		r.FechaCreacion = time.Now().UTC()
	}
	return nil
}

// EnsureEjercicios makes an unloaded or empty exercise list serialize as []
func (r *Rutina) EnsureEjercicios() {
	if r.Ejercicios == nil {
		r.Ejercicios = []Ejercicio{}
	}
}
