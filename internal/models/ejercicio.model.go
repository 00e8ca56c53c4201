package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DiaSemana string

const (
	DiaLunes     DiaSemana = "Lunes"
	DiaMartes    DiaSemana = "Martes"
	DiaMiercoles DiaSemana = "Miércoles"
	DiaJueves    DiaSemana = "Jueves"
	DiaViernes   DiaSemana = "Viernes"
	DiaSabado    DiaSemana = "Sábado"
	DiaDomingo   DiaSemana = "Domingo"
)

var DiasSemana = []DiaSemana{
	DiaLunes,
	DiaMartes,
	DiaMiercoles,
	DiaJueves,
	DiaViernes,
	DiaSabado,
	DiaDomingo,
}

func (d DiaSemana) IsValid() bool {
	for _, dia := range DiasSemana {
		if d == dia {
			return true
		}
	}
	return false
}

// Peso is an exercise weight. It encodes as a bare JSON number and accepts
// numbers or numeric strings.
type Peso struct {
	decimal.Decimal
}

func NewPeso(value decimal.Decimal) *Peso {
	return &Peso{Decimal: value}
}

func (p Peso) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// EjercicioFields are the client-writable columns of an exercise
type EjercicioFields struct {
	Nombre       string           `gorm:"type:varchar(255);not null" json:"nombre"`
	DiaSemana    DiaSemana        `gorm:"type:varchar(16);not null"  json:"dia_semana"`
	Series       int              `gorm:"not null"                   json:"series"`
	Repeticiones int              `gorm:"not null"                   json:"repeticiones"`
	Peso         *Peso            `gorm:"type:numeric"               json:"peso"`
	Notas        *string          `gorm:"type:text"                  json:"notas"`
	Orden        *int             `                                  json:"orden"`
}

type Ejercicio struct {
	BaseModel
	EjercicioFields
	RutinaID int `gorm:"not null;index:idx_ejercicio_rutina" json:"rutina_id"`
}

func (Ejercicio) TableName() string {
	return "ejercicio"
}

func (e *Ejercicio) BeforeCreate(tx *gorm.DB) (err error) {
	if e.RutinaID == 0 {
		return gorm.ErrInvalidValue
	}
	if !e.DiaSemana.IsValid() {
		return gorm.ErrInvalidValue
	}
	return nil
}
