package conversion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/production"
)

// ConversionInput parámetros de una corrida materia prima -> producto terminado.
type ConversionInput struct {
	MaterialID string
	ProductID  string
	AssetID    string
	Quantity   decimal.Decimal // toneladas de materia prima
	StartTime  time.Time
}

func (in ConversionInput) validate() error {
	if strings.TrimSpace(in.MaterialID) == "" || strings.TrimSpace(in.ProductID) == "" || strings.TrimSpace(in.AssetID) == "" {
		return fmt.Errorf("%w: materialId, productId and assetId are required", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be greater than zero", domain.ErrInvalidInput)
	}
	return nil
}

// evaluation estado leído del almacén y resultado del calculador para una corrida.
type evaluation struct {
	material *entity.Material
	product  *entity.Product
	asset    *entity.Asset
	result   production.Result
}

// evaluate valida la corrida contra el almacén y ejecuta el calculador.
// Con lock=true bloquea la materia prima (FOR UPDATE) y el empaque (FOR SHARE); sólo dentro de una tx.
func evaluate(ctx context.Context, repos Repos, yield production.YieldModel, in ConversionInput, lock bool) (*evaluation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var (
		material *entity.Material
		err      error
	)
	if lock {
		material, err = repos.Materials.GetForUpdate(ctx, in.MaterialID)
	} else {
		material, err = repos.Materials.GetByID(ctx, in.MaterialID)
	}
	if err != nil {
		return nil, err
	}
	product, err := repos.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	asset, err := repos.Assets.GetByID(ctx, in.AssetID)
	if err != nil {
		return nil, err
	}
	if material == nil || product == nil || asset == nil {
		return nil, domain.ErrNotFound
	}

	if material.Type != entity.MaterialRaw {
		return nil, fmt.Errorf("%w: material %s is %s, not %s", domain.ErrInvalidInput, material.ID, material.Type, entity.MaterialRaw)
	}
	if in.Quantity.GreaterThan(material.Quantity) {
		return nil, fmt.Errorf("%w: requested %s, in stock %s", domain.ErrInsufficientStock, in.Quantity, material.Quantity)
	}
	if in.Quantity.GreaterThan(asset.MaxMaterials) {
		return nil, fmt.Errorf("%w: requested %s, asset %s accepts %s", domain.ErrCapacityExceeded, in.Quantity, asset.ID, asset.MaxMaterials)
	}
	if asset.Status != entity.AssetActive {
		return nil, fmt.Errorf("%w: asset %s is %s", domain.ErrAssetUnavailable, asset.ID, asset.Status)
	}

	packaging, err := repos.Materials.ListByTypes(ctx, entity.PackagingTypes, lock)
	if err != nil {
		return nil, err
	}
	stock := production.PackagingStock{}
	for _, m := range packaging {
		stock.Add(m)
	}

	return &evaluation{
		material: material,
		product:  product,
		asset:    asset,
		result:   yield.Calculate(in.Quantity, stock),
	}, nil
}

// CalculateConversionUseCase calcula rendimiento y factibilidad de empaque sin modificar el almacén.
type CalculateConversionUseCase struct {
	repos   Repos
	yield   production.YieldModel
	metrics Recorder
}

// NewCalculateConversionUseCase construye el caso de uso. repos debe estar atado al pool (fuera de tx).
func NewCalculateConversionUseCase(repos Repos, yield production.YieldModel, metrics Recorder) *CalculateConversionUseCase {
	return &CalculateConversionUseCase{
		repos:   repos,
		yield:   yield,
		metrics: recorderOrNop(metrics),
	}
}

// Calculate devuelve el resultado del calculador. Un resultado con flags en false no es error:
// el operario ve qué empaque bloquea la corrida.
func (uc *CalculateConversionUseCase) Calculate(ctx context.Context, in ConversionInput) (*production.Result, error) {
	ev, err := evaluate(ctx, uc.repos, uc.yield, in, false)
	if err != nil {
		if !isBusinessError(err) {
			uc.metrics.CalculationFailed()
		}
		return nil, err
	}
	uc.metrics.CalculationObserved(ev.result.Feasible())
	return &ev.result, nil
}

// isBusinessError distingue rechazos de negocio de fallas de infraestructura.
func isBusinessError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidInput,
		domain.ErrNotFound,
		domain.ErrInsufficientStock,
		domain.ErrPackagingShortage,
		domain.ErrCapacityExceeded,
		domain.ErrAssetUnavailable,
		domain.ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
