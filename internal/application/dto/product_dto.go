package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto terminado.
type CreateProductRequest struct {
	SKU      string          `json:"sku" validate:"required,min=1,max=100"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"` // stock inicial
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
