package dto

// CarruselConfigRequest configuración del carrusel enviada por el admin.
// Las claves mantienen el formato del frontend del kiosk.
type CarruselConfigRequest struct {
	Mode               string   `json:"mode" validate:"required,oneof=all selected"`
	SelectedCategories []string `json:"selectedCategories"`
}

// CarruselConfigResponse configuración vigente del carrusel.
type CarruselConfigResponse struct {
	Mode               string   `json:"mode"`
	SelectedCategories []string `json:"selectedCategories"`
}
