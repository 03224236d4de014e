package entity

import "time"

// Categoria agrupa productos dentro de un local. Nombre único por local;
// Orden controla la posición en el menú del kiosk. Las categorías inactivas
// se filtran de los listados pero no se reactivan desde la API.
type Categoria struct {
	ID          int64
	LocalID     int64
	Nombre      string
	Descripcion string
	Orden       int
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
