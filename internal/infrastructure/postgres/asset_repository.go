package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `id, name, max_materials, status, created_at, updated_at`

// AssetRepo implementación de AssetRepository sobre PostgreSQL.
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de activos.
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	var status string
	if err := row.Scan(&a.ID, &a.Name, &a.MaxMaterials, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Status = entity.AssetStatus(status)
	return &a, nil
}

func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO assets (`+assetColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Name, a.MaxMaterials, string(a.Status), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

func (r *AssetRepo) List(ctx context.Context, limit, offset int) ([]*entity.Asset, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+assetColumns+` FROM assets ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
