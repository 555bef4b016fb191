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

// AssetUseCase casos de uso para líneas de producción.
type AssetUseCase struct {
	repo repository.AssetRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(repo repository.AssetRepository) *AssetUseCase {
	return &AssetUseCase{repo: repo}
}

// Create registra un nuevo activo. Status vacío equivale a ACTIVE.
func (uc *AssetUseCase) Create(ctx context.Context, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if strings.TrimSpace(in.Name) == "" || !in.MaxMaterials.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	status := entity.AssetStatus(in.Status)
	if status == "" {
		status = entity.AssetActive
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	asset := &entity.Asset{
		ID:           uuid.New().String(),
		Name:         in.Name,
		MaxMaterials: in.MaxMaterials,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// GetByID obtiene un activo por ID.
func (uc *AssetUseCase) GetByID(ctx context.Context, id string) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, nil
	}
	return toAssetResponse(asset), nil
}

// List lista activos con paginación.
func (uc *AssetUseCase) List(ctx context.Context, limit, offset int) (*dto.AssetListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssetResponse(a))
	}
	return &dto.AssetListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	if a == nil {
		return nil
	}
	return &dto.AssetResponse{
		ID:           a.ID,
		Name:         a.Name,
		MaxMaterials: a.MaxMaterials,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
