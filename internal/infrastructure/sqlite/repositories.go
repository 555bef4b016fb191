package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var (
	_ repository.MaterialRepository            = (*materialRepo)(nil)
	_ repository.ProductRepository             = (*productRepo)(nil)
	_ repository.AssetRepository               = (*assetRepo)(nil)
	_ repository.ProductionRepository          = (*productionRepo)(nil)
	_ repository.MaterialTransactionRepository = (*materialTransactionRepo)(nil)
	_ repository.StockMovementRepository       = (*stockMovementRepo)(nil)
)

type scanner interface {
	Scan(dest ...any) error
}

// ── materials ────────────────────────────────────────────────────────────────

const materialColumns = `id, name, type, quantity, min_quantity, unit, created_at, updated_at`

type materialRepo struct{ q querier }

func scanMaterial(row scanner) (*entity.Material, error) {
	var (
		m                 entity.Material
		typ, created, upd string
	)
	if err := row.Scan(&m.ID, &m.Name, &typ, &m.Quantity, &m.MinQuantity, &m.Unit, &created, &upd); err != nil {
		return nil, err
	}
	m.Type = entity.MaterialType(typ)
	var err error
	if m.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(upd); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) Create(ctx context.Context, m *entity.Material) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO materials (`+materialColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, string(m.Type), num(m.Quantity), num(m.MinQuantity), m.Unit,
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *materialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRowContext(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// GetForUpdate en SQLite la transacción ya es exclusiva (una conexión).
func (r *materialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

func (r *materialRepo) List(ctx context.Context, materialType entity.MaterialType, limit, offset int) ([]*entity.Material, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE (? = '' OR type = ?) ORDER BY name, id LIMIT ? OFFSET ?`,
		string(materialType), string(materialType), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return collectMaterials(rows)
}

func (r *materialRepo) ListByTypes(ctx context.Context, types []entity.MaterialType, _ bool) ([]*entity.Material, error) {
	if len(types) == 0 {
		return nil, nil
	}
	args := make([]any, len(types))
	for i, t := range types {
		args[i] = string(t)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(types)), ", ")
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE type IN (`+placeholders+`) ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials by type: %w", err)
	}
	return collectMaterials(rows)
}

func collectMaterials(rows *sql.Rows) ([]*entity.Material, error) {
	defer func() { _ = rows.Close() }()
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

// DecreaseQuantity resta qty con aritmética decimal exacta. Nunca deja stock negativo.
func (r *materialRepo) DecreaseQuantity(ctx context.Context, id string, qty decimal.Decimal) error {
	err := adjustQuantity(ctx, r.q, "materials", id, func(current decimal.Decimal) (decimal.Decimal, error) {
		if current.LessThan(qty) {
			return decimal.Zero, fmt.Errorf("%w: material %s has %s, requested %s", domain.ErrInsufficientStock, id, current, qty)
		}
		return current.Sub(qty), nil
	})
	switch {
	case err == nil, errors.Is(err, domain.ErrInsufficientStock):
		return err
	case errors.Is(err, errNoRow), isCheckViolation(err):
		return fmt.Errorf("%w: material %s", domain.ErrInsufficientStock, id)
	}
	return fmt.Errorf("decrease material quantity: %w", err)
}

// ── products ─────────────────────────────────────────────────────────────────

const productColumns = `id, sku, name, quantity, price, created_at, updated_at`

type productRepo struct{ q querier }

func scanProduct(row scanner) (*entity.Product, error) {
	var (
		p            entity.Product
		created, upd string
	)
	if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Quantity, &p.Price, &created, &upd); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(upd); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SKU, p.Name, num(p.Quantity), num(p.Price), formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE sku = ?`, sku)
}

func (r *productRepo) get(ctx context.Context, query, arg string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *productRepo) IncreaseQuantity(ctx context.Context, id string, qty decimal.Decimal) error {
	err := adjustQuantity(ctx, r.q, "products", id, func(current decimal.Decimal) (decimal.Decimal, error) {
		return current.Add(qty), nil
	})
	if err != nil {
		if errors.Is(err, errNoRow) {
			return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
		}
		return fmt.Errorf("increase product quantity: %w", err)
	}
	return nil
}

// ── assets ───────────────────────────────────────────────────────────────────

const assetColumns = `id, name, max_materials, status, created_at, updated_at`

type assetRepo struct{ q querier }

func scanAsset(row scanner) (*entity.Asset, error) {
	var (
		a                    entity.Asset
		status, created, upd string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.MaxMaterials, &status, &created, &upd); err != nil {
		return nil, err
	}
	a.Status = entity.AssetStatus(status)
	var err error
	if a.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(upd); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepo) Create(ctx context.Context, a *entity.Asset) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO assets (`+assetColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, num(a.MaxMaterials), string(a.Status), formatTime(a.CreatedAt), formatTime(a.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

func (r *assetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	a, err := scanAsset(r.q.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

func (r *assetRepo) List(ctx context.Context, limit, offset int) ([]*entity.Asset, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets ORDER BY name, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer func() { _ = rows.Close() }()
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

// ── productions ──────────────────────────────────────────────────────────────

const productionColumns = `id, material_id, product_id, asset_id, quantity, output, start_time, status, created_by, created_at`

type productionRepo struct{ q querier }

func scanProduction(row scanner) (*entity.Production, error) {
	var (
		p                      entity.Production
		status, start, created string
	)
	if err := row.Scan(&p.ID, &p.MaterialID, &p.ProductID, &p.AssetID, &p.Quantity, &p.Output,
		&start, &status, &p.CreatedBy, &created); err != nil {
		return nil, err
	}
	p.Status = entity.ProductionStatus(status)
	var err error
	if p.StartTime, err = parseTime(start); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productionRepo) Create(ctx context.Context, p *entity.Production) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO productions (`+productionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.MaterialID, p.ProductID, p.AssetID, num(p.Quantity), p.Output,
		formatTime(p.StartTime), string(p.Status), p.CreatedBy, formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert production: %w", err)
	}
	return nil
}

func (r *productionRepo) GetByID(ctx context.Context, id string) (*entity.Production, error) {
	p, err := scanProduction(r.q.QueryRowContext(ctx, `SELECT `+productionColumns+` FROM productions WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production: %w", err)
	}
	return p, nil
}

func (r *productionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Production, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+productionColumns+` FROM productions ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	defer func() { _ = rows.Close() }()
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

// ── material_transactions ────────────────────────────────────────────────────

const materialTxColumns = `id, material_id, type, quantity, reference, notes, created_by, created_at`

type materialTransactionRepo struct{ q querier }

func (r *materialTransactionRepo) Create(ctx context.Context, t *entity.MaterialTransaction) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO material_transactions (`+materialTxColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.MaterialID, t.Type, num(t.Quantity), t.Reference, t.Notes, t.CreatedBy, formatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert material transaction: %w", err)
	}
	return nil
}

func (r *materialTransactionRepo) ListByMaterial(ctx context.Context, materialID string, limit, offset int) ([]*entity.MaterialTransaction, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+materialTxColumns+` FROM material_transactions
		 WHERE material_id = ? ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		materialID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list material transactions: %w", err)
	}
	return collectMaterialTransactions(rows)
}

func (r *materialTransactionRepo) ListByReference(ctx context.Context, reference string) ([]*entity.MaterialTransaction, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+materialTxColumns+` FROM material_transactions WHERE reference = ? ORDER BY created_at, id`, reference)
	if err != nil {
		return nil, fmt.Errorf("list material transactions by reference: %w", err)
	}
	return collectMaterialTransactions(rows)
}

func collectMaterialTransactions(rows *sql.Rows) ([]*entity.MaterialTransaction, error) {
	defer func() { _ = rows.Close() }()
	var list []*entity.MaterialTransaction
	for rows.Next() {
		var (
			t       entity.MaterialTransaction
			created string
		)
		if err := rows.Scan(&t.ID, &t.MaterialID, &t.Type, &t.Quantity, &t.Reference, &t.Notes, &t.CreatedBy, &created); err != nil {
			return nil, fmt.Errorf("scan material transaction: %w", err)
		}
		var err error
		if t.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("scan material transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ── stock_movements ──────────────────────────────────────────────────────────

const stockMovementColumns = `id, product_id, type, quantity, reference, notes, user_id, created_at`

type stockMovementRepo struct{ q querier }

func (r *stockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO stock_movements (`+stockMovementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ProductID, m.Type, num(m.Quantity), m.Reference, m.Notes, m.UserID, formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

func (r *stockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	limit, offset = pageArgs(limit, offset)
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+stockMovementColumns+` FROM stock_movements
		 WHERE product_id = ? ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		productID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return collectStockMovements(rows)
}

func (r *stockMovementRepo) ListByReference(ctx context.Context, reference string) ([]*entity.StockMovement, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+stockMovementColumns+` FROM stock_movements WHERE reference = ? ORDER BY created_at, id`, reference)
	if err != nil {
		return nil, fmt.Errorf("list stock movements by reference: %w", err)
	}
	return collectStockMovements(rows)
}

func collectStockMovements(rows *sql.Rows) ([]*entity.StockMovement, error) {
	defer func() { _ = rows.Close() }()
	var list []*entity.StockMovement
	for rows.Next() {
		var (
			m       entity.StockMovement
			created string
		)
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reference, &m.Notes, &m.UserID, &created); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		var err error
		if m.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
