package usecase

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ProductionUseCase consultas sobre producciones confirmadas y sus asientos.
type ProductionUseCase struct {
	repo      repository.ProductionRepository
	ledger    repository.MaterialTransactionRepository
	movements repository.StockMovementRepository
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(
	repo repository.ProductionRepository,
	ledger repository.MaterialTransactionRepository,
	movements repository.StockMovementRepository,
) *ProductionUseCase {
	return &ProductionUseCase{repo: repo, ledger: ledger, movements: movements}
}

// GetByID devuelve la producción con los asientos que comparten su referencia (nil si no existe).
func (uc *ProductionUseCase) GetByID(ctx context.Context, id string) (*dto.ProductionDetailResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	txs, err := uc.ledger.ListByReference(ctx, p.Reference())
	if err != nil {
		return nil, err
	}
	movs, err := uc.movements.ListByReference(ctx, p.Reference())
	if err != nil {
		return nil, err
	}
	return &dto.ProductionDetailResponse{
		ProductionResponse:   toProductionResponse(p),
		MaterialTransactions: toMaterialTransactionResponses(txs),
		StockMovements:       toStockMovementResponses(movs),
	}, nil
}

// List lista producciones, la más reciente primero.
func (uc *ProductionUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductionListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductionResponse(p))
	}
	return &dto.ProductionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProductionResponse(p *entity.Production) dto.ProductionResponse {
	return dto.ProductionResponse{
		ID:         p.ID,
		MaterialID: p.MaterialID,
		ProductID:  p.ProductID,
		AssetID:    p.AssetID,
		Quantity:   p.Quantity,
		Output:     p.Output,
		StartTime:  p.StartTime,
		Status:     string(p.Status),
		Reference:  p.Reference(),
		CreatedBy:  p.CreatedBy,
		CreatedAt:  p.CreatedAt,
	}
}

func toMaterialTransactionResponses(list []*entity.MaterialTransaction) []dto.MaterialTransactionResponse {
	out := make([]dto.MaterialTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.MaterialTransactionResponse{
			ID:         t.ID,
			MaterialID: t.MaterialID,
			Type:       t.Type,
			Quantity:   t.Quantity,
			Reference:  t.Reference,
			Notes:      t.Notes,
			CreatedBy:  t.CreatedBy,
			CreatedAt:  t.CreatedAt,
		})
	}
	return out
}

func toStockMovementResponses(list []*entity.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			Notes:     m.Notes,
			UserID:    m.UserID,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
