package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un ítem del menú de un local. CategoriaID es nullable:
// al borrar una categoría los productos quedan sueltos (ON DELETE SET NULL),
// salvo el borrado explícito en cascada del caso de uso de categorías.
type Producto struct {
	ID          int64
	LocalID     int64
	CategoriaID *int64
	Nombre      string
	Descripcion string
	Precio      decimal.Decimal // siempre >= 0 (constraint en DB y validación en use case)
	ImagenURL   string
	Disponible  bool
	Destacado   bool
	Orden       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoriaResumen resumen denormalizado de la categoría de un producto
// (para listados de menú sin segundo query).
type CategoriaResumen struct {
	ID     int64
	Nombre string
}
