package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// MaterialTransactionRepository define el puerto del ledger de materiales (append-only).
type MaterialTransactionRepository interface {
	Create(ctx context.Context, tx *entity.MaterialTransaction) error
	ListByMaterial(ctx context.Context, materialID string, limit, offset int) ([]*entity.MaterialTransaction, error)
	ListByReference(ctx context.Context, reference string) ([]*entity.MaterialTransaction, error)
}
