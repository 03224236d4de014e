package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicate          = errors.New("ya existe una categoría con ese nombre")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrTokenExpired       = errors.New("token expirado")
	ErrTokenInvalid       = errors.New("token inválido")
	ErrUnrecognizedClaims = errors.New("token inválido: no es de dispositivo ni de admin")
	ErrTenantMismatch     = errors.New("no tienes acceso a este local")
	ErrCrossTenantRef     = errors.New("la categoría no pertenece a tu local")
)
