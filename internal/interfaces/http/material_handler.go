package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// MaterialHandler catálogo de materia prima y empaques (protegido).
type MaterialHandler struct {
	handlerBase
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase, log *logger.Logger) *MaterialHandler {
	return &MaterialHandler{handlerBase: newHandlerBase(log), uc: uc}
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "type: RAW_MATERIAL, BOTTLE, CARTON, BOTTLE_CAP, SLEEVE, TAPE, PACKAGING"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return h.catalogError(c, err, "material no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener material por ID
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.catalogError(c, err, "material no encontrado")
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "material no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "Filtrar por tipo"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.MaterialListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), c.Query("type"), limit, offset)
	if err != nil {
		return h.catalogError(c, err, "")
	}
	return c.JSON(out)
}

// Transactions godoc
// @Summary      Ledger de un material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del material"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.MaterialTransactionListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/transactions [get]
func (h *MaterialHandler) Transactions(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.Transactions(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return h.catalogError(c, err, "material no encontrado")
	}
	return c.JSON(out)
}
