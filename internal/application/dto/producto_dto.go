package dto

import "github.com/shopspring/decimal"

// CreateProductoRequest entrada para crear un producto (multipart: la imagen
// llega aparte como ImagenUpload).
type CreateProductoRequest struct {
	Nombre      string          `json:"nombre" form:"nombre" validate:"required,min=1,max=100"`
	Descripcion string          `json:"descripcion" form:"descripcion" validate:"max=2000"`
	Precio      decimal.Decimal `json:"precio" form:"precio"`
	CategoriaID int64           `json:"categoria_id" form:"categoria_id" validate:"required,gt=0"`
	Disponible  *bool           `json:"disponible" form:"disponible"`
	Destacado   *bool           `json:"destacado" form:"destacado"`
}

// UpdateProductoRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductoRequest struct {
	Nombre      *string          `json:"nombre" form:"nombre" validate:"omitempty,min=1,max=100"`
	Descripcion *string          `json:"descripcion" form:"descripcion" validate:"omitempty,max=2000"`
	Precio      *decimal.Decimal `json:"precio" form:"precio"`
	CategoriaID *int64           `json:"categoria_id" form:"categoria_id" validate:"omitempty,gt=0"`
	Disponible  *bool            `json:"disponible" form:"disponible"`
	Destacado   *bool            `json:"destacado" form:"destacado"`
}

// CategoriaResumenResponse resumen de la categoría embebido en un producto.
type CategoriaResumenResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// ProductoResponse salida de un producto con su categoría denormalizada.
// Es también la forma que viaja en los eventos WebSocket producto_*.
type ProductoResponse struct {
	ID          int64                     `json:"id"`
	LocalID     int64                     `json:"local_id"`
	CategoriaID *int64                    `json:"categoria_id"`
	Nombre      string                    `json:"nombre"`
	Descripcion string                    `json:"descripcion"`
	Precio      decimal.Decimal           `json:"precio"`
	Disponible  bool                      `json:"disponible"`
	Destacado   bool                      `json:"destacado"`
	ImagenURL   string                    `json:"imagen_url"`
	Categorias  *CategoriaResumenResponse `json:"categorias"`
}

// EliminarProductoResponse resultado de eliminar un producto.
type EliminarProductoResponse struct {
	Mensaje    string `json:"mensaje"`
	ProductoID int64  `json:"producto_id"`
}
