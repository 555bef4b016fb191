package conversion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/production"
)

// ConfirmInput entrada para confirmar una conversión.
// Hint es el resultado que vio el operario; sólo se compara, nunca se usa para escribir.
type ConfirmInput struct {
	ConversionInput
	ActorID string
	Hint    *production.Result
}

// ConfirmOutput resultado de una producción confirmada.
type ConfirmOutput struct {
	ProductionID string
	Result       production.Result // recalculado dentro de la transacción
	HintMismatch bool
}

// ConfirmProductionUseCase registra una producción de forma transaccional:
// Production, salida de materia prima, asiento OUT, entrada de producto y movimiento ADJUSTMENT,
// todo en una misma tx con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type ConfirmProductionUseCase struct {
	txRunner TxRunner
	yield    production.YieldModel
	timeout  time.Duration
	metrics  Recorder
	now      func() time.Time
}

// NewConfirmProductionUseCase construye el caso de uso. timeout <= 0 deja sólo el deadline del ctx.
func NewConfirmProductionUseCase(txRunner TxRunner, yield production.YieldModel, timeout time.Duration, metrics Recorder) *ConfirmProductionUseCase {
	return &ConfirmProductionUseCase{
		txRunner: txRunner,
		yield:    yield,
		timeout:  timeout,
		metrics:  recorderOrNop(metrics),
		now:      time.Now,
	}
}

// Confirm recalcula la conversión contra el stock bloqueado y aplica los cinco escritos.
// Cualquier falla deja el almacén intacto y se devuelve envuelta en domain.ErrTransactionFailed.
func (uc *ConfirmProductionUseCase) Confirm(ctx context.Context, in ConfirmInput) (*ConfirmOutput, error) {
	if strings.TrimSpace(in.ActorID) == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	started := time.Now()
	var out *ConfirmOutput
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		ev, err := evaluate(ctx, repos, uc.yield, in.ConversionInput, true)
		if err != nil {
			return err
		}
		if !ev.result.Feasible() {
			return fmt.Errorf("%w: %v", domain.ErrPackagingShortage, ev.result.Shortages())
		}
		if ev.result.ExpectedOutput <= 0 {
			return fmt.Errorf("%w: quantity %s yields no finished units", domain.ErrInvalidInput, in.Quantity)
		}

		prod, err := uc.apply(ctx, repos, in, ev.result.ExpectedOutput)
		if err != nil {
			return err
		}
		out = &ConfirmOutput{
			ProductionID: prod.ID,
			Result:       ev.result,
			HintMismatch: in.Hint != nil && in.Hint.ExpectedOutput != ev.result.ExpectedOutput,
		}
		return nil
	})
	elapsed := time.Since(started)

	if err != nil {
		outcome := OutcomeFailed
		if isBusinessError(err) {
			outcome = OutcomeRejected
		}
		uc.metrics.CommitObserved(outcome, elapsed, decimal.Zero)
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}
	uc.metrics.CommitObserved(OutcomeCommitted, elapsed, in.Quantity)
	return out, nil
}

// apply ejecuta los escritos de la producción con los repos de la tx, en orden.
func (uc *ConfirmProductionUseCase) apply(ctx context.Context, repos Repos, in ConfirmInput, output int64) (*entity.Production, error) {
	now := uc.now()
	startTime := in.StartTime
	if startTime.IsZero() {
		startTime = now
	}

	// 1. Production
	prod := &entity.Production{
		ID:         uuid.New().String(),
		MaterialID: in.MaterialID,
		ProductID:  in.ProductID,
		AssetID:    in.AssetID,
		Quantity:   in.Quantity,
		Output:     output,
		StartTime:  startTime,
		Status:     entity.ProductionInProgress,
		CreatedBy:  in.ActorID,
		CreatedAt:  now,
	}
	if err := repos.Productions.Create(ctx, prod); err != nil {
		return nil, err
	}

	// 2. Resta materia prima (protegida contra negativos)
	if err := repos.Materials.DecreaseQuantity(ctx, in.MaterialID, in.Quantity); err != nil {
		return nil, err
	}

	// 3. Asiento OUT en el ledger de materiales
	if err := repos.MaterialTransactions.Create(ctx, &entity.MaterialTransaction{
		ID:         uuid.New().String(),
		MaterialID: in.MaterialID,
		Type:       entity.MaterialTxOUT,
		Quantity:   in.Quantity,
		Reference:  prod.Reference(),
		Notes:      entity.NoteConversionOut,
		CreatedBy:  in.ActorID,
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}

	// 4. Suma producto terminado
	units := decimal.NewFromInt(output)
	if err := repos.Products.IncreaseQuantity(ctx, in.ProductID, units); err != nil {
		return nil, err
	}

	// 5. Movimiento de stock del producto
	if err := repos.StockMovements.Create(ctx, &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      entity.MovementTypeADJUSTMENT,
		Quantity:  units,
		Reference: prod.Reference(),
		Notes:     entity.NoteNewProduction,
		UserID:    in.ActorID,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return prod, nil
}
