package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrSyncInProgress     = errors.New("ya hay una sincronización en curso")
	ErrFeedUnavailable    = errors.New("feed del marketplace no disponible")
	ErrQuotaExceeded      = errors.New("cuota de peticiones del almacén tabular agotada")
	ErrProjectionFailed   = errors.New("la proyección a la hoja falló")
	ErrMissingCredentials = errors.New("credenciales no configuradas")
)
