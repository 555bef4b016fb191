// Package seed arma un catálogo de demostración: aceite a granel, los cinco empaques
// con reserva, un producto terminado y una línea de envasado.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/conversion"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// Catalog entidades sembradas. Los tests ajustan cantidades antes de Insert.
type Catalog struct {
	RawMaterial *entity.Material
	Packaging   []*entity.Material // uno por tipo de entity.PackagingTypes
	Product     *entity.Product
	Asset       *entity.Asset
}

// Demo catálogo con 10 t de aceite, 100.000 unidades de cada empaque (reserva 100),
// producto en 0 y una línea de 50 t activa.
func Demo(now time.Time) *Catalog {
	c := &Catalog{
		RawMaterial: &entity.Material{
			ID:        uuid.New().String(),
			Name:      "Aceite de palma crudo",
			Type:      entity.MaterialRaw,
			Quantity:  decimal.NewFromInt(10),
			Unit:      "ton",
			CreatedAt: now,
			UpdatedAt: now,
		},
		Product: &entity.Product{
			ID:        uuid.New().String(),
			SKU:       "ACE-1L",
			Name:      "Aceite vegetal 1 L",
			Quantity:  decimal.Zero,
			Price:     decimal.NewFromInt(9500),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Asset: &entity.Asset{
			ID:           uuid.New().String(),
			Name:         "Línea de envasado 1",
			MaxMaterials: decimal.NewFromInt(50),
			Status:       entity.AssetActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	names := map[entity.MaterialType]string{
		entity.MaterialBottle:    "Botella PET 1 L",
		entity.MaterialCarton:    "Caja x12",
		entity.MaterialBottleCap: "Tapa rosca",
		entity.MaterialSleeve:    "Funda termoencogible",
		entity.MaterialTape:      "Etiqueta adhesiva",
	}
	for _, t := range entity.PackagingTypes {
		c.Packaging = append(c.Packaging, &entity.Material{
			ID:          uuid.New().String(),
			Name:        names[t],
			Type:        t,
			Quantity:    decimal.NewFromInt(100_000),
			MinQuantity: decimal.NewFromInt(100),
			Unit:        "unit",
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return c
}

// PackagingOf devuelve el empaque sembrado del tipo dado.
func (c *Catalog) PackagingOf(t entity.MaterialType) *entity.Material {
	for _, m := range c.Packaging {
		if m.Type == t {
			return m
		}
	}
	return nil
}

// Insert persiste el catálogo en una sola transacción.
func (c *Catalog) Insert(ctx context.Context, tx conversion.TxRunner) error {
	return tx.Run(ctx, func(repos conversion.Repos) error {
		if err := repos.Materials.Create(ctx, c.RawMaterial); err != nil {
			return fmt.Errorf("seed raw material: %w", err)
		}
		for _, m := range c.Packaging {
			if err := repos.Materials.Create(ctx, m); err != nil {
				return fmt.Errorf("seed %s: %w", m.Type, err)
			}
		}
		if err := repos.Products.Create(ctx, c.Product); err != nil {
			return fmt.Errorf("seed product: %w", err)
		}
		if err := repos.Assets.Create(ctx, c.Asset); err != nil {
			return fmt.Errorf("seed asset: %w", err)
		}
		return nil
	})
}
