package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/conversion"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Calculate    *conversion.CalculateConversionUseCase
	Confirm      *conversion.ConfirmProductionUseCase
	MaterialUC   *usecase.MaterialUseCase
	ProductUC    *usecase.ProductUseCase
	AssetUC      *usecase.AssetUseCase
	ProductionUC *usecase.ProductionUseCase
	JWTSecret    string
	Logger       *logger.Logger
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token y un rol conocido.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireRole(AllRoles...))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Conversión (antes que /materials/:id para que "convert" no se tome como id)
	conversionHandler := NewConversionHandler(deps.Calculate, deps.Confirm, deps.Logger)
	api.Post("/materials/convert", conversionHandler.Convert)
	api.Post("/materials/convert/confirm", conversionHandler.Confirm)

	// Materials
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.Logger)
	materials.Post("/", adminOnly, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Get("/:id/transactions", materialHandler.Transactions)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Logger)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", productHandler.Movements)

	// Assets
	assets := api.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC, deps.Logger)
	assets.Post("/", adminOnly, assetHandler.Create)
	assets.Get("/", assetHandler.List)
	assets.Get("/:id", assetHandler.GetByID)

	// Productions
	productions := api.Group("/productions")
	productionHandler := NewProductionHandler(deps.ProductionUC, deps.Logger)
	productions.Get("/", productionHandler.List)
	productions.Get("/:id", productionHandler.GetByID)
}
