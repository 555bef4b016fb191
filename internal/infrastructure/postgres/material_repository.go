package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, type, quantity, min_quantity, unit, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	var typ string
	if err := row.Scan(&m.ID, &m.Name, &typ, &m.Quantity, &m.MinQuantity, &m.Unit, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Type = entity.MaterialType(typ)
	return &m, nil
}

// Create persiste un material nuevo.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, string(m.Type), m.Quantity, m.MinQuantity, m.Unit, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID. (nil, nil) si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

func (r *MaterialRepo) get(ctx context.Context, query, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// List lista materiales, opcionalmente filtrados por tipo.
func (r *MaterialRepo) List(ctx context.Context, materialType entity.MaterialType, limit, offset int) ([]*entity.Material, error) {
	limit, offset = pageArgs(limit, offset)
	query := `
		SELECT ` + materialColumns + `
		FROM materials WHERE ($1 = '' OR type = $1)
		ORDER BY name, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(materialType), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return collectMaterials(rows)
}

// ListByTypes devuelve los materiales de los tipos dados. Postgres no admite FOR SHARE con GROUP BY,
// por eso se leen filas individuales y la suma por tipo la hace el calculador.
func (r *MaterialRepo) ListByTypes(ctx context.Context, types []entity.MaterialType, lock bool) ([]*entity.Material, error) {
	if len(types) == 0 {
		return nil, nil
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	query := `SELECT ` + materialColumns + ` FROM materials WHERE type = ANY($1) ORDER BY id`
	if lock {
		query += ` FOR SHARE`
	}
	rows, err := r.q.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("list materials by type: %w", err)
	}
	return collectMaterials(rows)
}

func collectMaterials(rows pgx.Rows) ([]*entity.Material, error) {
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// DecreaseQuantity resta qty sólo si alcanza. Cero filas afectadas = stock insuficiente (o material inexistente).
func (r *MaterialRepo) DecreaseQuantity(ctx context.Context, id string, qty decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE materials SET quantity = quantity - $2, updated_at = now() WHERE id = $1 AND quantity >= $2`,
		id, qty,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("decrease material quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: material %s", domain.ErrInsufficientStock, id)
	}
	return nil
}
