package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto terminado (botella envasada).
// Quantity se incrementa sólo vía producción o movimientos de stock.
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	Quantity  decimal.Decimal
	Price     decimal.Decimal // precio de venta
	CreatedAt time.Time
	UpdatedAt time.Time
}
