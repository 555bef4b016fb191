package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionStatus estado de una orden de producción.
type ProductionStatus string

const (
	ProductionInProgress ProductionStatus = "IN_PROGRESS"
	ProductionCompleted  ProductionStatus = "COMPLETED"
	ProductionCancelled  ProductionStatus = "CANCELLED"
)

// ProductionReferencePrefix antecede al ID de producción en los asientos de ledger.
const ProductionReferencePrefix = "PROD-"

// Production registra una corrida de conversión materia prima -> producto terminado.
// Se crea una vez por confirmación y no se edita salvo transiciones de estado.
type Production struct {
	ID         string
	MaterialID string
	ProductID  string
	AssetID    string
	Quantity   decimal.Decimal // materia prima consumida (toneladas)
	Output     int64           // unidades terminadas producidas
	StartTime  time.Time
	Status     ProductionStatus
	CreatedBy  string // UserID
	CreatedAt  time.Time
}

// Reference devuelve la referencia compartida por los asientos de ledger de esta producción.
func (p *Production) Reference() string {
	return ProductionReference(p.ID)
}

// ProductionReference arma "PROD-{id}".
func ProductionReference(productionID string) string {
	return ProductionReferencePrefix + productionID
}
