package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/usecase"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// AssetHandler líneas de producción (protegido).
type AssetHandler struct {
	handlerBase
	uc *usecase.AssetUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *usecase.AssetUseCase, log *logger.Logger) *AssetHandler {
	return &AssetHandler{handlerBase: newHandlerBase(log), uc: uc}
}

// Create godoc
// @Summary      Registrar activo de producción
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "name, maxMaterials (toneladas), status"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return h.catalogError(c, err, "activo no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener activo por ID
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.catalogError(c, err, "activo no encontrado")
	}
	if out == nil {
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", "activo no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar activos
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.AssetListResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return h.catalogError(c, err, "")
	}
	return c.JSON(out)
}
