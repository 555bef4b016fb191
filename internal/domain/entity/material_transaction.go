package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de material.
const (
	MaterialTxIN  = "IN"  // entrada
	MaterialTxOUT = "OUT" // salida
)

// NoteConversionOut nota del asiento de salida de materia prima al convertir.
const NoteConversionOut = "تحويل إلى منتج نهائي"

// MaterialTransaction asiento append-only del ledger de materiales.
type MaterialTransaction struct {
	ID         string
	MaterialID string
	Type       string
	Quantity   decimal.Decimal // siempre positivo; el signo lo da Type
	Reference  string          // PROD-{id}, orden de compra, etc.
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
}
