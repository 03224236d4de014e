package dto

// CategoriaConProductos categoría del menú con sus productos (solo categorías
// con al menos un producto aparecen en el menú completo).
type CategoriaConProductos struct {
	ID          int64              `json:"id"`
	Nombre      string             `json:"nombre"`
	Descripcion string             `json:"descripcion"`
	Productos   []ProductoResponse `json:"productos"`
}

// LocalConMenu un local con su menú organizado por categorías.
type LocalConMenu struct {
	ID         int64                   `json:"id"`
	Nombre     string                  `json:"nombre"`
	Direccion  string                  `json:"direccion"`
	Telefono   string                  `json:"telefono"`
	Categorias []CategoriaConProductos `json:"categorias"`
}

// MenuCompletoResponse menú completo para el bootstrap del kiosk.
type MenuCompletoResponse struct {
	Locales []LocalConMenu `json:"locales"`
}

// LocalResponse datos públicos de un local.
type LocalResponse struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
}
