package conversion_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Produccion-api/internal/application/conversion"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	"github.com/jhoicas/Produccion-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Produccion-api/internal/seed"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const actor = "00000000-0000-0000-0000-0000000000aa"

type fixture struct {
	store   *sqlite.Store
	catalog *seed.Catalog
	calc    *conversion.CalculateConversionUseCase
	confirm *conversion.ConfirmProductionUseCase
	rec     *spyRecorder
}

// newFixture abre un SQLite temporal, siembra el catálogo demo (ajustable con tweak) y arma los casos de uso.
func newFixture(t *testing.T, tweak func(c *seed.Catalog)) *fixture {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "conversion.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	catalog := seed.Demo(time.Now())
	if tweak != nil {
		tweak(catalog)
	}
	require.NoError(t, catalog.Insert(ctx, store))

	rec := &spyRecorder{}
	yield := production.DefaultYieldModel()
	return &fixture{
		store:   store,
		catalog: catalog,
		calc:    conversion.NewCalculateConversionUseCase(store.Repos(), yield, rec),
		confirm: conversion.NewConfirmProductionUseCase(store, yield, 5*time.Second, rec),
		rec:     rec,
	}
}

func (f *fixture) input(tons string) conversion.ConversionInput {
	return conversion.ConversionInput{
		MaterialID: f.catalog.RawMaterial.ID,
		ProductID:  f.catalog.Product.ID,
		AssetID:    f.catalog.Asset.ID,
		Quantity:   decimal.RequireFromString(tons),
	}
}

func (f *fixture) confirmInput(tons string) conversion.ConfirmInput {
	return conversion.ConfirmInput{ConversionInput: f.input(tons), ActorID: actor}
}

func (f *fixture) material(t *testing.T) *entity.Material {
	t.Helper()
	m, err := f.store.Repos().Materials.GetByID(context.Background(), f.catalog.RawMaterial.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

func (f *fixture) product(t *testing.T) *entity.Product {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(context.Background(), f.catalog.Product.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

// assertNoWrites verifica que el almacén sigue como se sembró.
func (f *fixture) assertNoWrites(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	repos := f.store.Repos()

	assertDecimal(t, f.catalog.RawMaterial.Quantity.String(), f.material(t).Quantity)
	assertDecimal(t, f.catalog.Product.Quantity.String(), f.product(t).Quantity)

	prods, err := repos.Productions.List(ctx, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, prods, "no debe existir ninguna producción")

	txs, err := repos.MaterialTransactions.ListByMaterial(ctx, f.catalog.RawMaterial.ID, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, txs, "no debe existir ningún asiento de material")

	movs, err := repos.StockMovements.ListByProduct(ctx, f.catalog.Product.ID, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "no debe existir ningún movimiento de producto")
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

type commitObservation struct {
	outcome string
	tons    decimal.Decimal
}

type spyRecorder struct {
	mu           sync.Mutex
	feasible     int
	blocked      int
	failed       int
	observations []commitObservation
}

func (s *spyRecorder) CalculationObserved(feasible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if feasible {
		s.feasible++
	} else {
		s.blocked++
	}
}

func (s *spyRecorder) CalculationFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
}

func (s *spyRecorder) CommitObserved(outcome string, _ time.Duration, tons decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observations = append(s.observations, commitObservation{outcome: outcome, tons: tons})
}

// failingProducts hace fallar el incremento de producto terminado (paso 4 de la confirmación).
type failingProducts struct {
	repository.ProductRepository
}

func (failingProducts) IncreaseQuantity(context.Context, string, decimal.Decimal) error {
	return errors.New("disk I/O error")
}

type failOnProductIncrease struct {
	inner conversion.TxRunner
}

func (f failOnProductIncrease) Run(ctx context.Context, fn func(repos conversion.Repos) error) error {
	return f.inner.Run(ctx, func(repos conversion.Repos) error {
		repos.Products = failingProducts{repos.Products}
		return fn(repos)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Calculate
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_DosToneladasSinEscribir(t *testing.T) {
	f := newFixture(t, nil)

	r, err := f.calc.Calculate(context.Background(), f.input("2"))
	require.NoError(t, err)

	assert.Equal(t, int64(2000), r.Bottles)
	assert.Equal(t, int64(167), r.Cartons)
	assert.Equal(t, int64(2000), r.Caps)
	assert.Equal(t, int64(2000), r.Sleeves)
	assert.Equal(t, int64(2000), r.Stickers)
	assert.Equal(t, int64(2000), r.ExpectedOutput)
	assert.True(t, r.Feasible())
	assert.Equal(t, 1, f.rec.feasible)

	f.assertNoWrites(t)
}

func TestCalculate_EmpaqueInsuficienteNoEsError(t *testing.T) {
	f := newFixture(t, func(c *seed.Catalog) {
		carton := c.PackagingOf(entity.MaterialCarton)
		carton.Quantity = decimal.NewFromInt(250)
		carton.MinQuantity = decimal.NewFromInt(100) // 150 disponibles < 167
	})

	r, err := f.calc.Calculate(context.Background(), f.input("2"))
	require.NoError(t, err)
	assert.False(t, r.AvailableCartons)
	assert.True(t, r.AvailableBottles)
	assert.Equal(t, []entity.MaterialType{entity.MaterialCarton}, r.Shortages())
	assert.Equal(t, 1, f.rec.blocked)
}

func TestCalculate_EmpaqueSumaVariosMateriales(t *testing.T) {
	f := newFixture(t, func(c *seed.Catalog) {
		bottle := c.PackagingOf(entity.MaterialBottle)
		bottle.Quantity = decimal.NewFromInt(1100)
		bottle.MinQuantity = decimal.NewFromInt(100)
	})
	ctx := context.Background()
	// un segundo lote de botellas: 1100-100 + 1100-100 = 2000
	extra := *f.catalog.PackagingOf(entity.MaterialBottle)
	extra.ID = "bottle-lote-2"
	require.NoError(t, f.store.Repos().Materials.Create(ctx, &extra))

	r, err := f.calc.Calculate(ctx, f.input("2"))
	require.NoError(t, err)
	assert.True(t, r.AvailableBottles)

	r, err = f.calc.Calculate(ctx, f.input("2.001"))
	require.NoError(t, err)
	assert.False(t, r.AvailableBottles)
}

func TestCalculate_Errores(t *testing.T) {
	f := newFixture(t, func(c *seed.Catalog) {
		c.Asset.MaxMaterials = decimal.NewFromInt(5)
	})
	ctx := context.Background()

	cases := []struct {
		name string
		in   func() conversion.ConversionInput
		want error
	}{
		{"material inexistente", func() conversion.ConversionInput {
			in := f.input("1")
			in.MaterialID = "no-existe"
			return in
		}, domain.ErrNotFound},
		{"producto inexistente", func() conversion.ConversionInput {
			in := f.input("1")
			in.ProductID = "no-existe"
			return in
		}, domain.ErrNotFound},
		{"activo inexistente", func() conversion.ConversionInput {
			in := f.input("1")
			in.AssetID = "no-existe"
			return in
		}, domain.ErrNotFound},
		{"supera el stock", func() conversion.ConversionInput { return f.input("10.5") }, domain.ErrInsufficientStock},
		{"supera la capacidad", func() conversion.ConversionInput { return f.input("6") }, domain.ErrCapacityExceeded},
		{"cantidad cero", func() conversion.ConversionInput { return f.input("0") }, domain.ErrInvalidInput},
		{"cantidad negativa", func() conversion.ConversionInput { return f.input("-1") }, domain.ErrInvalidInput},
		{"material de empaque como materia prima", func() conversion.ConversionInput {
			in := f.input("1")
			in.MaterialID = f.catalog.PackagingOf(entity.MaterialBottle).ID
			return in
		}, domain.ErrInvalidInput},
		{"ids vacíos", func() conversion.ConversionInput {
			return conversion.ConversionInput{Quantity: decimal.NewFromInt(1)}
		}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.calc.Calculate(ctx, tc.in())
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Zero(t, f.rec.failed, "los rechazos de negocio no cuentan como falla")
}

func TestCalculate_ActivoEnMantenimiento(t *testing.T) {
	f := newFixture(t, func(c *seed.Catalog) {
		c.Asset.Status = entity.AssetMaintenance
	})
	_, err := f.calc.Calculate(context.Background(), f.input("1"))
	assert.ErrorIs(t, err, domain.ErrAssetUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_EscenarioCompleto(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	out, err := f.confirm.Confirm(ctx, f.confirmInput("2"))
	require.NoError(t, err)
	require.NotEmpty(t, out.ProductionID)
	assert.Equal(t, int64(2000), out.Result.ExpectedOutput)
	assert.False(t, out.HintMismatch)

	assertDecimal(t, "8", f.material(t).Quantity)
	assertDecimal(t, "2000", f.product(t).Quantity)

	repos := f.store.Repos()
	prods, err := repos.Productions.List(ctx, 100, 0)
	require.NoError(t, err)
	require.Len(t, prods, 1)
	prod := prods[0]
	assert.Equal(t, out.ProductionID, prod.ID)
	assert.Equal(t, int64(2000), prod.Output)
	assert.Equal(t, entity.ProductionInProgress, prod.Status)
	assert.Equal(t, actor, prod.CreatedBy)
	assertDecimal(t, "2", prod.Quantity)
	assert.False(t, prod.StartTime.IsZero(), "startTime vacío toma la hora actual")

	reference := entity.ProductionReference(prod.ID)

	txs, err := repos.MaterialTransactions.ListByReference(ctx, reference)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.MaterialTxOUT, txs[0].Type)
	assertDecimal(t, "2", txs[0].Quantity)
	assert.Equal(t, entity.NoteConversionOut, txs[0].Notes)
	assert.Equal(t, actor, txs[0].CreatedBy)

	movs, err := repos.StockMovements.ListByReference(ctx, reference)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, movs[0].Type)
	assertDecimal(t, "2000", movs[0].Quantity)
	assert.Equal(t, entity.NoteNewProduction, movs[0].Notes)
	assert.Equal(t, actor, movs[0].UserID)

	// el empaque no se consume
	bottle, err := repos.Materials.GetByID(ctx, f.catalog.PackagingOf(entity.MaterialBottle).ID)
	require.NoError(t, err)
	assertDecimal(t, "100000", bottle.Quantity)

	require.Len(t, f.rec.observations, 1)
	assert.Equal(t, conversion.OutcomeCommitted, f.rec.observations[0].outcome)
	assertDecimal(t, "2", f.rec.observations[0].tons)
}

func TestConfirm_StartTimeSeRespeta(t *testing.T) {
	f := newFixture(t, nil)
	start := time.Date(2026, 3, 14, 6, 30, 0, 0, time.UTC)
	in := f.confirmInput("1")
	in.StartTime = start

	out, err := f.confirm.Confirm(context.Background(), in)
	require.NoError(t, err)

	prod, err := f.store.Repos().Productions.GetByID(context.Background(), out.ProductionID)
	require.NoError(t, err)
	assert.True(t, start.Equal(prod.StartTime))
}

func TestConfirm_ToneladasFraccionariasAgotanElStockExacto(t *testing.T) {
	f := newFixture(t, func(c *seed.Catalog) {
		c.RawMaterial.Quantity = decimal.RequireFromString("0.3")
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.confirm.Confirm(ctx, f.confirmInput("0.1"))
		require.NoError(t, err, "corrida %d", i+1)
	}
	assertDecimal(t, "0", f.material(t).Quantity)
	assertDecimal(t, "300", f.product(t).Quantity)

	txs, err := f.store.Repos().MaterialTransactions.ListByMaterial(ctx, f.catalog.RawMaterial.ID, 100, 0)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	consumed := decimal.Zero
	for _, tx := range txs {
		consumed = consumed.Add(tx.Quantity)
	}
	assertDecimal(t, "0.3", consumed)

	_, err = f.confirm.Confirm(ctx, f.confirmInput("0.001"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestConfirm_StockInsuficienteNoEscribe(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.confirm.Confirm(context.Background(), f.confirmInput("11"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	f.assertNoWrites(t)
	require.Len(t, f.rec.observations, 1)
	assert.Equal(t, conversion.OutcomeRejected, f.rec.observations[0].outcome)
}

func TestConfirm_FallaAlSumarProductoHaceRollback(t *testing.T) {
	f := newFixture(t, nil)
	confirm := conversion.NewConfirmProductionUseCase(
		failOnProductIncrease{inner: f.store}, production.DefaultYieldModel(), 5*time.Second, f.rec)

	_, err := confirm.Confirm(context.Background(), f.confirmInput("2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)

	// producción, resta de materia prima y asiento OUT ya se habían escrito dentro de la tx
	f.assertNoWrites(t)
	require.Len(t, f.rec.observations, 1)
	assert.Equal(t, conversion.OutcomeFailed, f.rec.observations[0].outcome)
}

func TestConfirm_EmpaqueInsuficienteRechaza(t *testing.T) {
	f := newFixture(t, func(c *seed.Catalog) {
		sleeve := c.PackagingOf(entity.MaterialSleeve)
		sleeve.Quantity = decimal.NewFromInt(500)
	})

	_, err := f.confirm.Confirm(context.Background(), f.confirmInput("1"))
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.ErrorIs(t, err, domain.ErrPackagingShortage)
	f.assertNoWrites(t)
}

func TestConfirm_SinProduccionEsperadaRechaza(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.confirm.Confirm(context.Background(), f.confirmInput("0.0004"))
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	f.assertNoWrites(t)
}

func TestConfirm_SinActorNoTocaElAlmacen(t *testing.T) {
	f := newFixture(t, nil)
	in := f.confirmInput("2")
	in.ActorID = ""

	_, err := f.confirm.Confirm(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.NotErrorIs(t, err, domain.ErrTransactionFailed)
	assert.Empty(t, f.rec.observations, "no se abre transacción")
	f.assertNoWrites(t)
}

func TestConfirm_EntradaInvalidaAntesDeLaTransaccion(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.confirm.Confirm(context.Background(), f.confirmInput("-2"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrTransactionFailed)
	assert.Empty(t, f.rec.observations)
}

func TestConfirm_ResultadoDelClienteSoloSeCompara(t *testing.T) {
	f := newFixture(t, nil)
	in := f.confirmInput("2")
	in.Hint = &production.Result{ExpectedOutput: 999_999}

	out, err := f.confirm.Confirm(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, out.HintMismatch)
	assert.Equal(t, int64(2000), out.Result.ExpectedOutput)
	assertDecimal(t, "2000", f.product(t).Quantity)
}

func TestConfirm_AgotamientoConcurrente(t *testing.T) {
	f := newFixture(t, func(c *seed.Catalog) {
		c.RawMaterial.Quantity = decimal.NewFromInt(2)
	})
	ctx := context.Background()

	errs := make([]error, 2)
	var g errgroup.Group
	for i := range errs {
		i := i
		g.Go(func() error {
			_, errs[i] = f.confirm.Confirm(ctx, f.confirmInput("2"))
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var ok, failed int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		failed++
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	}
	assert.Equal(t, 1, ok, "exactamente una confirmación gana")
	assert.Equal(t, 1, failed)

	assertDecimal(t, "0", f.material(t).Quantity)
	assertDecimal(t, "2000", f.product(t).Quantity)

	prods, err := f.store.Repos().Productions.List(ctx, 100, 0)
	require.NoError(t, err)
	assert.Len(t, prods, 1)
}
