package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus estado operativo de una línea de producción.
type AssetStatus string

const (
	AssetActive      AssetStatus = "ACTIVE"
	AssetMaintenance AssetStatus = "MAINTENANCE"
	AssetInactive    AssetStatus = "INACTIVE"
)

// Valid indica si el estado pertenece a la enumeración.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetActive, AssetMaintenance, AssetInactive:
		return true
	}
	return false
}

// Asset representa una máquina o línea de envasado.
// MaxMaterials es el tope de materia prima (toneladas) que procesa en una corrida.
type Asset struct {
	ID           string
	Name         string
	MaxMaterials decimal.Decimal
	Status       AssetStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
