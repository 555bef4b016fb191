package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialType clasifica un material del almacén. Es un conjunto cerrado: toda
// decisión por tipo se hace con switch exhaustivo sobre estas constantes.
type MaterialType string

const (
	MaterialRaw       MaterialType = "RAW_MATERIAL" // aceite a granel (toneladas)
	MaterialBottle    MaterialType = "BOTTLE"
	MaterialCarton    MaterialType = "CARTON"
	MaterialBottleCap MaterialType = "BOTTLE_CAP"
	MaterialSleeve    MaterialType = "SLEEVE"
	MaterialTape      MaterialType = "TAPE" // etiqueta adhesiva
	MaterialPackaging MaterialType = "PACKAGING"
)

// PackagingTypes son los tipos cuyo stock limita una corrida de envasado.
var PackagingTypes = []MaterialType{
	MaterialBottle,
	MaterialCarton,
	MaterialBottleCap,
	MaterialSleeve,
	MaterialTape,
}

// Valid indica si el tipo pertenece a la enumeración.
func (t MaterialType) Valid() bool {
	switch t {
	case MaterialRaw, MaterialBottle, MaterialCarton, MaterialBottleCap,
		MaterialSleeve, MaterialTape, MaterialPackaging:
		return true
	}
	return false
}

// IsPackaging indica si el tipo participa en el chequeo de factibilidad de una conversión.
// PACKAGING es material de empaque genérico y no se consume por botella.
func (t MaterialType) IsPackaging() bool {
	switch t {
	case MaterialBottle, MaterialCarton, MaterialBottleCap, MaterialSleeve, MaterialTape:
		return true
	case MaterialRaw, MaterialPackaging:
		return false
	}
	return false
}

// Material representa materia prima o material de empaque.
// MinQuantity es reserva de seguridad: nunca cuenta como disponible para consumo.
type Material struct {
	ID          string
	Name        string
	Type        MaterialType
	Quantity    decimal.Decimal // siempre >= 0
	MinQuantity decimal.Decimal
	Unit        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available devuelve la cantidad consumible (Quantity - MinQuantity).
func (m *Material) Available() decimal.Decimal {
	return m.Quantity.Sub(m.MinQuantity)
}
