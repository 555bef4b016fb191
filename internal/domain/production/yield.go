package production

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// YieldModel agrupa los ratios fijos de conversión aceite -> botellas y empaques.
type YieldModel struct {
	BottlesPerTon     int64 // 1 ton -> 1000 botellas
	BottlesPerCarton  int64 // botellas por caja
	CapsPerBottle     int64
	SleevesPerBottle  int64
	StickersPerBottle int64
}

// DefaultYieldModel devuelve los ratios de la planta.
func DefaultYieldModel() YieldModel {
	return YieldModel{
		BottlesPerTon:     1000,
		BottlesPerCarton:  12,
		CapsPerBottle:     1,
		SleevesPerBottle:  1,
		StickersPerBottle: 1,
	}
}

// Validate verifica que todos los ratios sean positivos.
func (m YieldModel) Validate() error {
	if m.BottlesPerTon <= 0 || m.BottlesPerCarton <= 0 ||
		m.CapsPerBottle <= 0 || m.SleevesPerBottle <= 0 || m.StickersPerBottle <= 0 {
		return errors.New("yield model: ratios must be positive")
	}
	return nil
}

// PackagingLevel stock agregado de un tipo de empaque.
type PackagingLevel struct {
	Quantity    decimal.Decimal
	MinQuantity decimal.Decimal
}

// Available devuelve lo consumible: la reserva MinQuantity nunca cuenta.
func (l PackagingLevel) Available() decimal.Decimal {
	return l.Quantity.Sub(l.MinQuantity)
}

// Covers indica si lo disponible alcanza para el requerimiento.
func (l PackagingLevel) Covers(required int64) bool {
	return l.Available().GreaterThanOrEqual(decimal.NewFromInt(required))
}

// PackagingStock niveles por tipo de empaque. Un tipo ausente equivale a stock cero.
type PackagingStock map[entity.MaterialType]PackagingLevel

// Add suma un material al nivel de su tipo. Ignora tipos que no son de empaque.
func (s PackagingStock) Add(m *entity.Material) {
	if m == nil || !m.Type.IsPackaging() {
		return
	}
	l := s[m.Type]
	l.Quantity = l.Quantity.Add(m.Quantity)
	l.MinQuantity = l.MinQuantity.Add(m.MinQuantity)
	s[m.Type] = l
}

// Result salida del calculador. Cada cantidad lleva su flag de factibilidad.
type Result struct {
	Bottles           int64
	AvailableBottles  bool
	Cartons           int64
	AvailableCartons  bool
	Caps              int64
	AvailableCaps     bool
	Sleeves           int64
	AvailableSleeves  bool
	Stickers          int64
	AvailableStickers bool
	ExpectedOutput    int64
}

// Feasible es verdadero sólo si los cinco empaques alcanzan.
func (r Result) Feasible() bool {
	return r.AvailableBottles && r.AvailableCartons && r.AvailableCaps &&
		r.AvailableSleeves && r.AvailableStickers
}

// Shortages lista los tipos de empaque que bloquean la corrida, en el orden de PackagingTypes.
func (r Result) Shortages() []entity.MaterialType {
	var out []entity.MaterialType
	for _, t := range entity.PackagingTypes {
		if !r.available(t) {
			out = append(out, t)
		}
	}
	return out
}

func (r Result) available(t entity.MaterialType) bool {
	switch t {
	case entity.MaterialBottle:
		return r.AvailableBottles
	case entity.MaterialCarton:
		return r.AvailableCartons
	case entity.MaterialBottleCap:
		return r.AvailableCaps
	case entity.MaterialSleeve:
		return r.AvailableSleeves
	case entity.MaterialTape:
		return r.AvailableStickers
	}
	return true
}

// Bottles = floor(toneladas * BottlesPerTon). Cantidades negativas producen 0.
func (m YieldModel) Bottles(tons decimal.Decimal) int64 {
	if !tons.IsPositive() {
		return 0
	}
	return tons.Mul(decimal.NewFromInt(m.BottlesPerTon)).Floor().IntPart()
}

// Cartons = ceil(botellas / BottlesPerCarton).
func (m YieldModel) Cartons(bottles int64) int64 {
	if bottles <= 0 {
		return 0
	}
	return (bottles + m.BottlesPerCarton - 1) / m.BottlesPerCarton
}

// Calculate calcula rendimiento y requerimientos de empaque para una corrida hipotética.
// Es una función pura: no consulta ni modifica el almacén.
func (m YieldModel) Calculate(tons decimal.Decimal, stock PackagingStock) Result {
	bottles := m.Bottles(tons)
	cartons := m.Cartons(bottles)
	caps := bottles * m.CapsPerBottle
	sleeves := bottles * m.SleevesPerBottle
	stickers := bottles * m.StickersPerBottle

	return Result{
		Bottles:           bottles,
		AvailableBottles:  stock[entity.MaterialBottle].Covers(bottles),
		Cartons:           cartons,
		AvailableCartons:  stock[entity.MaterialCarton].Covers(cartons),
		Caps:              caps,
		AvailableCaps:     stock[entity.MaterialBottleCap].Covers(caps),
		Sleeves:           sleeves,
		AvailableSleeves:  stock[entity.MaterialSleeve].Covers(sleeves),
		Stickers:          stickers,
		AvailableStickers: stock[entity.MaterialTape].Covers(stickers),
		ExpectedOutput:    bottles,
	}
}
