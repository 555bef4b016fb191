package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Produccion-api/pkg/config"
)

const (
	defaultMaxConns = 25
	defaultMinConns = 2
)

// NewPool abre el pool PostgreSQL y verifica la conexión con un Ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// newPoolConfig traduce DBConfig a pgxpool.Config: DATABASE_URL o DB_HOST/DB_PORT/...,
// límites del pool, codec NUMERIC -> decimal y, con ForceIPv4, resolución sólo a A records.
func newPoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	poolConfig.MinConns = min(defaultMinConns, poolConfig.MaxConns)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	if cfg.ForceIPv4 {
		// Hosts sin ruta IPv6 (contenedores) que igual reciben AAAA del DNS.
		poolConfig.ConnConfig.LookupFunc = lookupIPv4(net.DefaultResolver)
	}

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

// lookupIPv4 resuelve host sólo a direcciones IPv4 usando el ctx del dial.
func lookupIPv4(r *net.Resolver) func(ctx context.Context, host string) ([]string, error) {
	return func(ctx context.Context, host string) ([]string, error) {
		if ip := net.ParseIP(host); ip != nil {
			if ip.To4() == nil {
				return nil, fmt.Errorf("DB host %s es IPv6 y DB_FORCE_IPV4 está activo", host)
			}
			return []string{host}, nil
		}
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err != nil {
			return nil, fmt.Errorf("resolver IPv4 de %s: %w", host, err)
		}
		addrs := make([]string, 0, len(ips))
		for _, ip := range ips {
			addrs = append(addrs, ip.String())
		}
		return addrs, nil
	}
}
