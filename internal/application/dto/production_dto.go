package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionResponse salida de una producción.
type ProductionResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"materialId"`
	ProductID  string          `json:"productId"`
	AssetID    string          `json:"assetId"`
	Quantity   decimal.Decimal `json:"quantity"`
	Output     int64           `json:"output"`
	StartTime  time.Time       `json:"startTime"`
	Status     string          `json:"status"`
	Reference  string          `json:"reference"`
	CreatedBy  string          `json:"createdBy"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ProductionDetailResponse producción con los asientos que generó.
type ProductionDetailResponse struct {
	ProductionResponse
	MaterialTransactions []MaterialTransactionResponse `json:"materialTransactions"`
	StockMovements       []StockMovementResponse       `json:"stockMovements"`
}

// ProductionListResponse lista paginada de producciones.
type ProductionListResponse struct {
	Items []ProductionResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// StockMovementResponse movimiento de producto terminado.
type StockMovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
	UserID    string          `json:"userId"`
	CreatedAt time.Time       `json:"createdAt"`
}

// StockMovementListResponse página de movimientos de un producto.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
