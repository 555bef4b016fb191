package repository

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ProductionRepository define el puerto de persistencia para Production.
type ProductionRepository interface {
	Create(ctx context.Context, production *entity.Production) error
	GetByID(ctx context.Context, id string) (*entity.Production, error)
	// List ordena de la más reciente a la más antigua.
	List(ctx context.Context, limit, offset int) ([]*entity.Production, error)
}
