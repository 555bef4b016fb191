package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// Las implementaciones funcionan con pool o dentro de una transacción.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	List(ctx context.Context, materialType entity.MaterialType, limit, offset int) ([]*entity.Material, error)
	// ListByTypes devuelve todos los materiales de los tipos indicados.
	// Con lock=true toma un bloqueo compartido (FOR SHARE) sobre las filas leídas.
	ListByTypes(ctx context.Context, types []entity.MaterialType, lock bool) ([]*entity.Material, error)
	// DecreaseQuantity resta qty sólo si quantity >= qty; si no, devuelve domain.ErrInsufficientStock.
	DecreaseQuantity(ctx context.Context, id string, qty decimal.Decimal) error
}
