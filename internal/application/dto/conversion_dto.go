package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConvertRequest body para POST /api/materials/convert.
type ConvertRequest struct {
	MaterialID string          `json:"materialId"`
	ProductID  string          `json:"productId"`
	AssetID    string          `json:"assetId"`
	Quantity   decimal.Decimal `json:"quantity"` // toneladas
	StartTime  time.Time       `json:"startTime"`
}

// ConversionResultDTO salida del calculador: cantidad requerida y si el empaque alcanza.
type ConversionResultDTO struct {
	Bottles           int64 `json:"bottles"`
	AvailableBottles  bool  `json:"availableBottles"`
	Cartons           int64 `json:"cartons"`
	AvailableCartons  bool  `json:"availableCartons"`
	Caps              int64 `json:"caps"`
	AvailableCaps     bool  `json:"availableCaps"`
	Sleeves           int64 `json:"sleeves"`
	AvailableSleeves  bool  `json:"availableSleeves"`
	Stickers          int64 `json:"stickers"`
	AvailableStickers bool  `json:"availableStickers"`
	ExpectedOutput    int64 `json:"expectedOutput"`
}

// ConfirmConversionRequest body para POST /api/materials/convert/confirm.
// Result es el cálculo previo mostrado al operario; el servidor lo recalcula.
type ConfirmConversionRequest struct {
	ConvertRequest
	Result *ConversionResultDTO `json:"result"`
}

// ConfirmConversionResponse respuesta de una producción confirmada.
type ConfirmConversionResponse struct {
	Success      bool   `json:"success"`
	ProductionID string `json:"productionId"`
}
