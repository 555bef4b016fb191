package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// handlerBase dependencias compartidas por los handlers.
type handlerBase struct {
	log *logger.Logger
}

func newHandlerBase(log *logger.Logger) handlerBase {
	if log == nil {
		log = logger.Nop()
	}
	return handlerBase{log: log}
}

// page lee limit/offset con default 20 y tope 100.
func page(c *fiber.Ctx) (limit, offset int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p.Limit, p.Offset
}
