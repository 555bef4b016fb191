package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const stockMovementColumns = `id, product_id, type, quantity, reference, notes, user_id, created_at`

// StockMovementRepo movimientos de producto terminado sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_movements (`+stockMovementColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Reference, m.Notes, m.UserID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct kardex de un producto.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+stockMovementColumns+` FROM stock_movements
		 WHERE product_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		productID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return collectStockMovements(rows)
}

// ListByReference movimientos con la referencia dada.
func (r *StockMovementRepo) ListByReference(ctx context.Context, reference string) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+stockMovementColumns+` FROM stock_movements WHERE reference = $1 ORDER BY created_at, id`,
		reference,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock movements by reference: %w", err)
	}
	return collectStockMovements(rows)
}

func collectStockMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reference, &m.Notes, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
