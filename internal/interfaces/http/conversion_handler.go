package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/conversion"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// Mensajes públicos del motor de conversión.
const (
	msgNotFound          = "material, product, or asset not found"
	msgInsufficient      = "insufficient available quantity"
	msgComputationFailed = "conversion computation failed"
	msgConfirmFailed     = "conversion confirmation failed"

	msgInvalidConversion = "datos de conversión inválidos"
	msgCapacityExceeded  = "la cantidad supera la capacidad de la línea"
	msgAssetUnavailable  = "la línea de producción no está activa"
)

// rejectionMessage texto público fijo por código; el detalle queda en el log.
func rejectionMessage(code string) string {
	switch code {
	case "CAPACITY_EXCEEDED":
		return msgCapacityExceeded
	case "ASSET_UNAVAILABLE":
		return msgAssetUnavailable
	}
	return msgInvalidConversion
}

// ConversionHandler expone el calculador y la confirmación de producción (protegido).
type ConversionHandler struct {
	handlerBase
	calculate *conversion.CalculateConversionUseCase
	confirm   *conversion.ConfirmProductionUseCase
}

// NewConversionHandler construye el handler.
func NewConversionHandler(calculate *conversion.CalculateConversionUseCase, confirm *conversion.ConfirmProductionUseCase, log *logger.Logger) *ConversionHandler {
	return &ConversionHandler{
		handlerBase: newHandlerBase(log),
		calculate:   calculate,
		confirm:     confirm,
	}
}

// Convert godoc
// @Summary      Calcular conversión materia prima -> producto terminado
// @Description  No modifica el almacén. Cada cantidad de empaque trae su flag de disponibilidad.
// @Tags         conversion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConvertRequest  true  "materialId, productId, assetId, quantity (toneladas), startTime"
// @Success      200   {object}  dto.ConversionResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/materials/convert [post]
func (h *ConversionHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	result, err := h.calculate.Calculate(c.Context(), toConversionInput(in))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", msgNotFound)
		case errors.Is(err, domain.ErrInsufficientStock):
			return errorJSON(c, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", msgInsufficient)
		case errors.Is(err, domain.ErrInvalidInput),
			errors.Is(err, domain.ErrCapacityExceeded),
			errors.Is(err, domain.ErrAssetUnavailable):
			code := errorCode(err)
			h.log.Warn().Err(err).Str("materialId", in.MaterialID).Str("assetId", in.AssetID).Str("code", code).Msg("conversión rechazada")
			return errorJSON(c, fiber.StatusBadRequest, code, rejectionMessage(code))
		}
		h.log.Error().Err(err).Str("materialId", in.MaterialID).Msg("cálculo de conversión")
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", msgComputationFailed)
	}
	return c.JSON(toResultDTO(*result))
}

// Confirm godoc
// @Summary      Confirmar producción
// @Description  Recalcula dentro de una transacción y registra producción, salida de materia prima,
// @Description  entrada de producto terminado y sus asientos. Todo o nada.
// @Tags         conversion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmConversionRequest  true  "Mismos campos que /convert más el resultado mostrado"
// @Success      200   {object}  dto.ConfirmConversionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/materials/convert/confirm [post]
func (h *ConversionHandler) Confirm(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "token inválido")
	}
	var in dto.ConfirmConversionRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}

	input := conversion.ConfirmInput{
		ConversionInput: toConversionInput(in.ConvertRequest),
		ActorID:         userID,
	}
	if in.Result != nil {
		hint := fromResultDTO(*in.Result)
		input.Hint = &hint
	}

	out, err := h.confirm.Confirm(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionFailed):
			// después de abrir la transacción: siempre 500, el código dice por qué
			code := errorCode(err)
			if code == "INTERNAL" {
				h.log.Error().Err(err).Str("userId", userID).Str("materialId", in.MaterialID).Msg("confirmación de producción")
			} else {
				h.log.Warn().Err(err).Str("userId", userID).Str("materialId", in.MaterialID).Str("code", code).Msg("producción rechazada")
			}
			return errorJSON(c, fiber.StatusInternalServerError, code, msgConfirmFailed)
		case errors.Is(err, domain.ErrUnauthorized):
			return errorJSON(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "token inválido")
		case errors.Is(err, domain.ErrInvalidInput):
			h.log.Warn().Err(err).Str("userId", userID).Msg("confirmación con datos inválidos")
			return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", msgInvalidConversion)
		}
		h.log.Error().Err(err).Str("userId", userID).Msg("confirmación de producción")
		return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", msgConfirmFailed)
	}

	if out.HintMismatch {
		h.log.Warn().
			Str("productionId", out.ProductionID).
			Int64("hintExpectedOutput", input.Hint.ExpectedOutput).
			Int64("expectedOutput", out.Result.ExpectedOutput).
			Msg("el resultado enviado por el cliente difiere del recalculado")
	}
	h.log.Info().
		Str("productionId", out.ProductionID).
		Str("userId", userID).
		Str("quantity", in.Quantity.String()).
		Int64("output", out.Result.ExpectedOutput).
		Msg("producción confirmada")

	return c.JSON(dto.ConfirmConversionResponse{Success: true, ProductionID: out.ProductionID})
}

func toConversionInput(in dto.ConvertRequest) conversion.ConversionInput {
	return conversion.ConversionInput{
		MaterialID: in.MaterialID,
		ProductID:  in.ProductID,
		AssetID:    in.AssetID,
		Quantity:   in.Quantity,
		StartTime:  in.StartTime,
	}
}

func toResultDTO(r production.Result) dto.ConversionResultDTO {
	return dto.ConversionResultDTO{
		Bottles:           r.Bottles,
		AvailableBottles:  r.AvailableBottles,
		Cartons:           r.Cartons,
		AvailableCartons:  r.AvailableCartons,
		Caps:              r.Caps,
		AvailableCaps:     r.AvailableCaps,
		Sleeves:           r.Sleeves,
		AvailableSleeves:  r.AvailableSleeves,
		Stickers:          r.Stickers,
		AvailableStickers: r.AvailableStickers,
		ExpectedOutput:    r.ExpectedOutput,
	}
}

func fromResultDTO(r dto.ConversionResultDTO) production.Result {
	return production.Result{
		Bottles:           r.Bottles,
		AvailableBottles:  r.AvailableBottles,
		Cartons:           r.Cartons,
		AvailableCartons:  r.AvailableCartons,
		Caps:              r.Caps,
		AvailableCaps:     r.AvailableCaps,
		Sleeves:           r.Sleeves,
		AvailableSleeves:  r.AvailableSleeves,
		Stickers:          r.Stickers,
		AvailableStickers: r.AvailableStickers,
		ExpectedOutput:    r.ExpectedOutput,
	}
}
