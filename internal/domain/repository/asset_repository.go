package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// AssetRepository define el puerto de persistencia para Asset (líneas de producción).
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Asset, error)
}
