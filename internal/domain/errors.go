package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrYearRequired     = errors.New("año requerido para esta consulta")
	ErrUnknownIntent    = errors.New("intent desconocido")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnknownDimension = errors.New("dimensión desconocida")
	ErrUnauthorized     = errors.New("no autorizado")
)
