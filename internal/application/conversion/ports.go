package conversion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// Repos agrupa los repositorios que usa el motor de conversión.
// Dentro de TxRunner.Run todos están atados a la misma transacción.
type Repos struct {
	Materials            repository.MaterialRepository
	Products             repository.ProductRepository
	Assets               repository.AssetRepository
	Productions          repository.ProductionRepository
	MaterialTransactions repository.MaterialTransactionRepository
	StockMovements       repository.StockMovementRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad de la producción.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// Resultados de una confirmación, usados como etiqueta de métricas.
const (
	OutcomeCommitted = "committed"
	OutcomeRejected  = "rejected" // validación de negocio (stock, empaque, capacidad)
	OutcomeFailed    = "failed"   // error de infraestructura
)

// Recorder recibe observaciones del motor (lo implementa infrastructure/metrics).
type Recorder interface {
	CalculationObserved(feasible bool)
	CalculationFailed()
	CommitObserved(outcome string, elapsed time.Duration, consumedTons decimal.Decimal)
}

type nopRecorder struct{}

func (nopRecorder) CalculationObserved(bool)                              {}
func (nopRecorder) CalculationFailed()                                    {}
func (nopRecorder) CommitObserved(string, time.Duration, decimal.Decimal) {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
