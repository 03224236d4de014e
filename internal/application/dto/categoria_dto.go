package dto

// CreateCategoriaRequest entrada para crear una categoría.
type CreateCategoriaRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=1,max=50"`
	Descripcion string `json:"descripcion" validate:"max=2000"`
}

// UpdateCategoriaRequest entrada para actualizar una categoría.
type UpdateCategoriaRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=1,max=50"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=2000"`
}

// CategoriaResponse salida de una categoría.
type CategoriaResponse struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Orden       int    `json:"orden"`
}

// ReordenarCategoriasRequest nuevo orden completo de las categorías del local.
type ReordenarCategoriasRequest struct {
	Orden []int64 `json:"orden" validate:"required,min=1,dive,gt=0"`
}

// ReordenarCategoriasResponse confirmación del reordenamiento.
type ReordenarCategoriasResponse struct {
	Mensaje string  `json:"message"`
	Orden   []int64 `json:"orden"`
}

// EliminarCategoriaResponse resultado de eliminar una categoría y sus productos.
type EliminarCategoriaResponse struct {
	Mensaje             string `json:"mensaje"`
	CategoriaID         int64  `json:"categoria_id"`
	ProductosEliminados int    `json:"productos_eliminados"`
}
