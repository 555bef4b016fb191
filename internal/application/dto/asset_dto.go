package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssetRequest entrada para registrar una línea de producción.
type CreateAssetRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	MaxMaterials decimal.Decimal `json:"maxMaterials"`
	Status       string          `json:"status"` // ACTIVE por defecto
}

// AssetResponse salida de un activo.
type AssetResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	MaxMaterials decimal.Decimal `json:"maxMaterials"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// AssetListResponse lista paginada de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
