package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.MaterialTransactionRepository = (*MaterialTransactionRepo)(nil)

const materialTxColumns = `id, material_id, type, quantity, reference, notes, created_by, created_at`

// MaterialTransactionRepo ledger de materiales sobre PostgreSQL (solo INSERT y lecturas).
type MaterialTransactionRepo struct {
	q Querier
}

// NewMaterialTransactionRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewMaterialTransactionRepository(q Querier) *MaterialTransactionRepo {
	return &MaterialTransactionRepo{q: q}
}

// Create registra un asiento en el ledger.
func (r *MaterialTransactionRepo) Create(ctx context.Context, t *entity.MaterialTransaction) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO material_transactions (`+materialTxColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.MaterialID, t.Type, t.Quantity, t.Reference, t.Notes, t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert material transaction: %w", err)
	}
	return nil
}

// ListByMaterial asientos de un material, del más reciente al más antiguo.
func (r *MaterialTransactionRepo) ListByMaterial(ctx context.Context, materialID string, limit, offset int) ([]*entity.MaterialTransaction, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+materialTxColumns+` FROM material_transactions
		 WHERE material_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		materialID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list material transactions: %w", err)
	}
	return collectMaterialTransactions(rows)
}

// ListByReference asientos con la referencia dada (p. ej. PROD-{id}).
func (r *MaterialTransactionRepo) ListByReference(ctx context.Context, reference string) ([]*entity.MaterialTransaction, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+materialTxColumns+` FROM material_transactions WHERE reference = $1 ORDER BY created_at, id`,
		reference,
	)
	if err != nil {
		return nil, fmt.Errorf("list material transactions by reference: %w", err)
	}
	return collectMaterialTransactions(rows)
}

func collectMaterialTransactions(rows pgx.Rows) ([]*entity.MaterialTransaction, error) {
	defer rows.Close()
	var list []*entity.MaterialTransaction
	for rows.Next() {
		var t entity.MaterialTransaction
		if err := rows.Scan(&t.ID, &t.MaterialID, &t.Type, &t.Quantity, &t.Reference, &t.Notes, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan material transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
