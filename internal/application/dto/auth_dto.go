package dto

// DeviceAuthRequest credenciales de un dispositivo (kiosk/tablet).
type DeviceAuthRequest struct {
	DeviceID  string `json:"device_id" validate:"required,max=50"`
	SecretKey string `json:"secret_key" validate:"required"`
}

// DeviceAuthResponse token emitido para un dispositivo.
type DeviceAuthResponse struct {
	Token    string `json:"token"`
	DeviceID string `json:"device_id"`
	LocalID  int64  `json:"local_id"`
	EsDemo   bool   `json:"is_demo,omitempty"`
}

// AdminLoginRequest credenciales de un usuario administrador.
type AdminLoginRequest struct {
	Usuario    string `json:"usuario" validate:"required,max=100"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// AdminLoginResponse token emitido para un admin.
type AdminLoginResponse struct {
	Token   string `json:"token"`
	Usuario string `json:"usuario"`
	LocalID int64  `json:"local_id"`
	Rol     string `json:"rol"`
}

// VerifyDeviceResponse resultado de verificar un token de dispositivo.
type VerifyDeviceResponse struct {
	Status   string `json:"status"`
	DeviceID string `json:"device_id"`
	LocalID  int64  `json:"local_id"`
	EsDemo   bool   `json:"is_demo"`
}

// VerifyAdminResponse resultado de verificar un token de admin.
type VerifyAdminResponse struct {
	Status  string `json:"status"`
	UserID  int64  `json:"user_id"`
	LocalID int64  `json:"local_id"`
	Rol     string `json:"rol"`
	EsDemo  bool   `json:"is_demo"`
}
