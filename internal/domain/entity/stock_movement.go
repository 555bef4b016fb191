package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock de producto terminado.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (producción nueva)
)

// NoteNewProduction nota del movimiento generado por una producción.
const NoteNewProduction = "إنتاج جديد"

// StockMovement asiento append-only del inventario de producto terminado.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	Reference string // PROD-{id}, factura, nota de ajuste, etc.
	Notes     string
	UserID    string
	CreatedAt time.Time
}
