package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// MaterialUseCase casos de uso para materia prima y empaques.
// La cantidad sólo cambia vía producción o movimientos; aquí se fija el stock inicial.
type MaterialUseCase struct {
	repo   repository.MaterialRepository
	ledger repository.MaterialTransactionRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, ledger repository.MaterialTransactionRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, ledger: ledger}
}

// Create crea un material. Unit por defecto: "ton" para materia prima, "unit" para el resto.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	materialType := entity.MaterialType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if strings.TrimSpace(in.Name) == "" || !materialType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() || in.MinQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	unit := in.Unit
	if unit == "" {
		unit = "unit"
		if materialType == entity.MaterialRaw {
			unit = "ton"
		}
	}
	now := time.Now()
	material := &entity.Material{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Type:        materialType,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		Unit:        unit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// List lista materiales, opcionalmente filtrados por tipo.
func (uc *MaterialUseCase) List(ctx context.Context, materialType string, limit, offset int) (*dto.MaterialListResponse, error) {
	t := entity.MaterialType(strings.ToUpper(strings.TrimSpace(materialType)))
	if t != "" && !t.Valid() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(ctx, t, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Transactions devuelve el ledger de un material. ErrNotFound si no existe.
func (uc *MaterialUseCase) Transactions(ctx context.Context, materialID string, limit, offset int) (*dto.MaterialTransactionListResponse, error) {
	material, err := uc.repo.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.ledger.ListByMaterial(ctx, materialID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.MaterialTransactionListResponse{
		Items: toMaterialTransactionResponses(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		MinQuantity: m.MinQuantity,
		Available:   m.Available(),
		Unit:        m.Unit,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
