package entity

import "time"

// Modos del carrusel del kiosk.
const (
	CarruselModoTodas     = "all"
	CarruselModoSeleccion = "selected"
)

// ConfiguracionCarrusel define qué categorías rota el carrusel de un local.
type ConfiguracionCarrusel struct {
	ID                      int64
	LocalID                 int64
	Modo                    string
	CategoriasSeleccionadas []string
	UpdatedAt               time.Time
}
