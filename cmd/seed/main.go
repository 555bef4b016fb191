// seed siembra el catálogo de demostración (aceite, empaques, producto y línea)
// en el almacén configurado e imprime un token de desarrollo para probar la API.
//
// Uso: go run ./cmd/seed [-actor operario-1] [-role operario] [-no-data]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Produccion-api/internal/application/conversion"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Produccion-api/internal/seed"
	"github.com/jhoicas/Produccion-api/pkg/config"
	"github.com/jhoicas/Produccion-api/pkg/jwt"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

func main() {
	actor := flag.String("actor", "operario-1", "userID del token generado")
	role := flag.String("role", "operario", "rol del token: admin, supervisor u operario")
	noData := flag.Bool("no-data", false, "sólo imprime el token, no siembra datos")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	if !*noData {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		tx, closeFn, err := openTxRunner(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("abrir almacén")
		}
		defer closeFn()

		catalog := seed.Demo(time.Now().UTC())
		if err := catalog.Insert(ctx, tx); err != nil {
			log.Fatal().Err(err).Msg("sembrar catálogo")
		}
		log.Info().
			Str("material_id", catalog.RawMaterial.ID).
			Str("product_id", catalog.Product.ID).
			Str("asset_id", catalog.Asset.ID).
			Int("packaging", len(catalog.Packaging)).
			Msg("catálogo sembrado")
	}

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío, no se genera token")
		return
	}
	token, err := jwt.Generate(cfg.JWT.Secret, *actor, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	fmt.Println(token)
}

func openTxRunner(ctx context.Context, cfg *config.Config) (conversion.TxRunner, func(), error) {
	if cfg.DB.Driver == config.DriverSQLite {
		s, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return postgres.NewTxRunner(pool, cfg.DB.LockTimeout()), pool.Close, nil
}
