package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Produccion-api/internal/application/conversion"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/Produccion-api/internal/interfaces/http"
	"github.com/jhoicas/Produccion-api/pkg/config"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// store lo que main necesita del almacén elegido.
type store struct {
	repos    conversion.Repos
	txRunner conversion.TxRunner
	ping     func(ctx context.Context) error
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("abrir almacén")
	}
	defer st.close()

	yield := production.DefaultYieldModel()
	yield.BottlesPerTon = int64(cfg.Production.BottlesPerTon)
	yield.BottlesPerCarton = int64(cfg.Production.BottlesPerCarton)
	if err := yield.Validate(); err != nil {
		log.Fatal().Err(err).Msg("modelo de rendimiento")
	}

	var recorder *metrics.Recorder
	var convRecorder conversion.Recorder
	var reqObserver httpRouter.RequestObserver
	if cfg.Metrics.Enabled {
		recorder = metrics.New()
		convRecorder = recorder
		reqObserver = recorder
	}

	calculateUC := conversion.NewCalculateConversionUseCase(st.repos, yield, convRecorder)
	confirmUC := conversion.NewConfirmProductionUseCase(st.txRunner, yield, cfg.Production.CommitTimeout(), convRecorder)
	materialUC := usecase.NewMaterialUseCase(st.repos.Materials, st.repos.MaterialTransactions)
	productUC := usecase.NewProductUseCase(st.repos.Products, st.repos.StockMovements)
	assetUC := usecase.NewAssetUseCase(st.repos.Assets)
	productionUC := usecase.NewProductionUseCase(st.repos.Productions, st.repos.MaterialTransactions, st.repos.StockMovements)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http"), reqObserver))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.DocsEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Producción API",
		}))
	}

	if recorder != nil {
		app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := st.ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("health: almacén no responde")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Calculate:    calculateUC,
		Confirm:      confirmUC,
		MaterialUC:   materialUC,
		ProductUC:    productUC,
		AssetUC:      assetUC,
		ProductionUC: productionUC,
		JWTSecret:    cfg.JWT.Secret,
		Logger:       log.Named("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore abre PostgreSQL o SQLite según DB_DRIVER y aplica migraciones si corresponde.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.DB.SQLitePath).Msg("almacén SQLite listo")
		return &store{
			repos:    s.Repos(),
			txRunner: s,
			ping:     s.Ping,
			close:    func() { _ = s.Close() },
		}, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if cfg.DB.AutoMigrate {
			results, err := postgres.Migrate(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, err
			}
			for _, r := range results {
				log.Info().Str("migration", r.Source.Path).Dur("duration", r.Duration).Msg("migración aplicada")
			}
		}
		return &store{
			repos:    postgres.NewRepos(pool),
			txRunner: postgres.NewTxRunner(pool, cfg.DB.LockTimeout()),
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil
	}
}
