package production_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/production"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func level(q, min int64) production.PackagingLevel {
	return production.PackagingLevel{Quantity: decimal.NewFromInt(q), MinQuantity: decimal.NewFromInt(min)}
}

// ampleStock stock de empaque holgado para cualquier corrida de los tests.
func ampleStock() production.PackagingStock {
	return production.PackagingStock{
		entity.MaterialBottle:    level(1_000_000, 100),
		entity.MaterialCarton:    level(1_000_000, 100),
		entity.MaterialBottleCap: level(1_000_000, 100),
		entity.MaterialSleeve:    level(1_000_000, 100),
		entity.MaterialTape:      level(1_000_000, 100),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rendimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_RendimientoDeterminista(t *testing.T) {
	m := production.DefaultYieldModel()
	cases := []struct {
		tons    string
		bottles int64
	}{
		{"0", 0},
		{"0.0005", 0},
		{"0.001", 1},
		{"1", 1000},
		{"2", 2000},
		{"2.5", 2500},
		{"1.2345", 1234},
		{"10.9999", 10999},
	}
	for _, tc := range cases {
		t.Run(tc.tons, func(t *testing.T) {
			r := m.Calculate(decimal.RequireFromString(tc.tons), ampleStock())
			assert.Equal(t, tc.bottles, r.Bottles)
			assert.Equal(t, r.Bottles, r.ExpectedOutput, "expectedOutput siempre igual a bottles")
			assert.Equal(t, r.Bottles, r.Caps)
			assert.Equal(t, r.Bottles, r.Sleeves)
			assert.Equal(t, r.Bottles, r.Stickers)
		})
	}
}

func TestCalculate_CantidadNegativaNoProduce(t *testing.T) {
	r := production.DefaultYieldModel().Calculate(decimal.NewFromInt(-3), ampleStock())
	assert.Zero(t, r.Bottles)
	assert.Zero(t, r.Cartons)
	assert.True(t, r.Feasible())
}

func TestCartons_RedondeoHaciaArriba(t *testing.T) {
	m := production.DefaultYieldModel()
	assert.Equal(t, int64(84), m.Cartons(1000), "1000/12 = 83.33 -> 84")
	assert.Equal(t, int64(167), m.Cartons(2000))
	assert.Equal(t, int64(1), m.Cartons(12))
	assert.Equal(t, int64(2), m.Cartons(13))
	assert.Equal(t, int64(0), m.Cartons(0))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserva (minQuantity) y factibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestPackagingLevel_ExcluyeReserva(t *testing.T) {
	assert.True(t, level(500, 100).Covers(350), "500-100=400 >= 350")
	assert.False(t, level(500, 200).Covers(350), "500-200=300 < 350")
	assert.True(t, level(450, 100).Covers(350), "igualdad exacta es suficiente")
	assert.False(t, production.PackagingLevel{}.Covers(1), "sin stock no cubre")
	assert.True(t, production.PackagingLevel{}.Covers(0))
}

func TestCalculate_FlagsPorTipoDeEmpaque(t *testing.T) {
	stock := ampleStock()
	// 1 ton -> 1000 botellas, 84 cajas
	stock[entity.MaterialCarton] = level(100, 20)  // 80 disponibles < 84
	stock[entity.MaterialTape] = level(1_050, 100) // 950 disponibles < 1000
	delete(stock, entity.MaterialSleeve)           // sin registro de fundas

	r := production.DefaultYieldModel().Calculate(decimal.NewFromInt(1), stock)

	assert.True(t, r.AvailableBottles)
	assert.False(t, r.AvailableCartons)
	assert.True(t, r.AvailableCaps)
	assert.False(t, r.AvailableSleeves)
	assert.False(t, r.AvailableStickers)
	assert.False(t, r.Feasible())
	assert.Equal(t,
		[]entity.MaterialType{entity.MaterialCarton, entity.MaterialSleeve, entity.MaterialTape},
		r.Shortages())
}

func TestCalculate_EscenarioDosToneladas(t *testing.T) {
	r := production.DefaultYieldModel().Calculate(decimal.NewFromInt(2), ampleStock())

	assert.Equal(t, production.Result{
		Bottles: 2000, AvailableBottles: true,
		Cartons: 167, AvailableCartons: true,
		Caps: 2000, AvailableCaps: true,
		Sleeves: 2000, AvailableSleeves: true,
		Stickers: 2000, AvailableStickers: true,
		ExpectedOutput: 2000,
	}, r)
	assert.True(t, r.Feasible())
	assert.Empty(t, r.Shortages())
}

func TestPackagingStock_AgregaPorTipo(t *testing.T) {
	stock := production.PackagingStock{}
	stock.Add(&entity.Material{Type: entity.MaterialBottle, Quantity: decimal.NewFromInt(300), MinQuantity: decimal.NewFromInt(50)})
	stock.Add(&entity.Material{Type: entity.MaterialBottle, Quantity: decimal.NewFromInt(200), MinQuantity: decimal.NewFromInt(50)})
	stock.Add(&entity.Material{Type: entity.MaterialRaw, Quantity: decimal.NewFromInt(10)})
	stock.Add(nil)

	require.Len(t, stock, 1, "materia prima no cuenta como empaque")
	assert.True(t, stock[entity.MaterialBottle].Available().Equal(decimal.NewFromInt(400)))
}

func TestYieldModel_Validate(t *testing.T) {
	require.NoError(t, production.DefaultYieldModel().Validate())

	bad := production.DefaultYieldModel()
	bad.BottlesPerCarton = 0
	assert.Error(t, bad.Validate())
}
