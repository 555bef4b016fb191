package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// ProductionHandler consultas de producciones confirmadas (protegido).
type ProductionHandler struct {
	handlerBase
	uc *usecase.ProductionUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *usecase.ProductionUseCase, log *logger.Logger) *ProductionHandler {
	return &ProductionHandler{handlerBase: newHandlerBase(log), uc: uc}
}

// List godoc
// @Summary      Listar producciones (más reciente primero)
// @Tags         productions
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductionListResponse
// @Router       /api/productions [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return h.catalogError(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de producción con sus asientos
// @Tags         productions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la producción"
// @Success      200  {object}  dto.ProductionDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productions/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.catalogError(c, err, "producción no encontrada")
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "producción no encontrada")
	}
	return c.JSON(out)
}
