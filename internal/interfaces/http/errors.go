package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/domain"
)

// errorCode traduce un error de dominio a código de máquina. "INTERNAL" si no es de negocio.
func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrPackagingShortage):
		return "PACKAGING_SHORTAGE"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "CAPACITY_EXCEEDED"
	case errors.Is(err, domain.ErrAssetUnavailable):
		return "ASSET_UNAVAILABLE"
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, domain.ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, domain.ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return "FORBIDDEN"
	}
	return "INTERNAL"
}

// catalogError respuesta estándar para los casos de uso de catálogo y consultas.
func (h *handlerBase) catalogError(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "datos inválidos")
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "NOT_FOUND", notFoundMsg)
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe")
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	return errorJSON(c, fiber.StatusInternalServerError, "INTERNAL", "error interno")
}
