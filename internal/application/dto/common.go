package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImagenUpload imagen recibida por multipart, ya leída en memoria.
type ImagenUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}
