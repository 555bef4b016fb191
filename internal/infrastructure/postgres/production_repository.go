package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

const productionColumns = `id, material_id, product_id, asset_id, quantity, output, start_time, status, created_by, created_at`

// ProductionRepo persistencia de corridas de producción.
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

func scanProduction(row pgx.Row) (*entity.Production, error) {
	var p entity.Production
	var status string
	if err := row.Scan(&p.ID, &p.MaterialID, &p.ProductID, &p.AssetID, &p.Quantity, &p.Output,
		&p.StartTime, &status, &p.CreatedBy, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Status = entity.ProductionStatus(status)
	return &p, nil
}

// Create inserta la producción.
func (r *ProductionRepo) Create(ctx context.Context, p *entity.Production) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO productions (`+productionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.MaterialID, p.ProductID, p.AssetID, p.Quantity, p.Output,
		p.StartTime, string(p.Status), p.CreatedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production: %w", err)
	}
	return nil
}

// GetByID obtiene una producción. (nil, nil) si no existe.
func (r *ProductionRepo) GetByID(ctx context.Context, id string) (*entity.Production, error) {
	p, err := scanProduction(r.q.QueryRow(ctx, `SELECT `+productionColumns+` FROM productions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production: %w", err)
	}
	return p, nil
}

// List de la más reciente a la más antigua.
func (r *ProductionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Production, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+productionColumns+` FROM productions ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Production
	for rows.Next() {
		p, err := scanProduction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
