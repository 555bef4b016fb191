package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPackagingShortage = errors.New("material de empaque insuficiente")
	ErrCapacityExceeded  = errors.New("cantidad supera la capacidad del activo")
	ErrAssetUnavailable  = errors.New("activo no disponible para producción")
	ErrTransactionFailed = errors.New("la transacción de producción no se completó")
)
