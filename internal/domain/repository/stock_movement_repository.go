package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de producto terminado.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(ctx context.Context, reference string) ([]*entity.StockMovement, error)
}
