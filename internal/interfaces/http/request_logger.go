package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Produccion-api/pkg/logger"
)

// RequestObserver recibe cada request respondido (lo implementa infrastructure/metrics).
type RequestObserver interface {
	HTTPRequestObserved(method, route string, status int)
}

// RequestLogger registra método, ruta, status, latencia y usuario de cada request.
func RequestLogger(log *logger.Logger, obs RequestObserver) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		route := c.Route().Path

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("userId", GetUserID(c)).
			Msg("request")

		if obs != nil {
			obs.HTTPRequestObserved(c.Method(), route, status)
		}
		return err
	}
}
