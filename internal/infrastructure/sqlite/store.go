package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/jhoicas/Produccion-api/internal/application/conversion"
)

//go:embed migrations/*.sql
var migrations embed.FS

// timeLayout ancho fijo en UTC para que el orden de texto coincida con el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var _ conversion.TxRunner = (*Store)(nil)

// querier lo común entre *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store almacén SQLite para desarrollo y tests. Una sola conexión abierta: las transacciones
// quedan serializadas, equivalente a los bloqueos de fila de PostgreSQL.
type Store struct {
	db   *sql.DB
	path string
}

// Open abre (o crea) la base en path y aplica las migraciones.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "produccion.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db, path: path}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close cierra la base.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifica la conexión (usado por /health).
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Repos repositorios atados a la base, fuera de transacción.
func (s *Store) Repos() conversion.Repos {
	return newRepos(s.db)
}

// Run ejecuta fn en una transacción; Rollback si fn falla.
func (s *Store) Run(ctx context.Context, fn func(repos conversion.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(newRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func newRepos(q querier) conversion.Repos {
	return conversion.Repos{
		Materials:            &materialRepo{q: q},
		Products:             &productRepo{q: q},
		Assets:               &assetRepo{q: q},
		Productions:          &productionRepo{q: q},
		MaterialTransactions: &materialTransactionRepo{q: q},
		StockMovements:       &stockMovementRepo{q: q},
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

// num representación exacta guardada en las columnas de cantidad (TEXT).
func num(d decimal.Decimal) string {
	return d.String()
}

// maxSwapAttempts reintentos de adjustQuantity cuando otro escritor cambió la fila entre lectura y escritura.
const maxSwapAttempts = 5

// errNoRow la fila a ajustar no existe.
var errNoRow = errors.New("row not found")

// adjustQuantity lee la cantidad exacta de table.id, la transforma con apply y la escribe
// sólo si el texto guardado no cambió (compare-and-swap). table es siempre una constante del paquete.
func adjustQuantity(ctx context.Context, q querier, table, id string, apply func(current decimal.Decimal) (decimal.Decimal, error)) error {
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		var raw string
		err := q.QueryRowContext(ctx, `SELECT quantity FROM `+table+` WHERE id = ?`, id).Scan(&raw)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errNoRow
			}
			return fmt.Errorf("read %s quantity: %w", table, err)
		}
		current, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("parse %s quantity %q: %w", table, raw, err)
		}
		next, err := apply(current)
		if err != nil {
			return err
		}
		res, err := q.ExecContext(ctx,
			`UPDATE `+table+` SET quantity = ?, updated_at = ? WHERE id = ? AND quantity = ?`,
			num(next), formatTime(time.Now()), id, raw,
		)
		if err != nil {
			return fmt.Errorf("update %s quantity: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update %s quantity: %w", table, err)
		}
		if n == 1 {
			return nil
		}
	}
	return fmt.Errorf("update %s quantity: %s changed concurrently %d times", table, id, maxSwapAttempts)
}

func pageArgs(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isCheckViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "CHECK constraint failed")
}
