package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material (materia prima o empaque).
type CreateMaterialRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Type        string          `json:"type" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"minQuantity"`
	Unit        string          `json:"unit"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"minQuantity"`
	Available   decimal.Decimal `json:"available"`
	Unit        string          `json:"unit"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// MaterialListResponse lista paginada de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MaterialTransactionResponse asiento del ledger de materiales.
type MaterialTransactionResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"materialId"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reference  string          `json:"reference"`
	Notes      string          `json:"notes"`
	CreatedBy  string          `json:"createdBy"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// MaterialTransactionListResponse página del ledger de un material.
type MaterialTransactionListResponse struct {
	Items []MaterialTransactionResponse `json:"items"`
	Page  PageResponse                  `json:"page"`
}
