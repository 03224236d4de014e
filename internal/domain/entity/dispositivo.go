package entity

import "time"

// Tipos válidos de dispositivo.
const (
	TipoKiosk   = "kiosk"
	TipoAdminPC = "admin_pc"
	TipoTablet  = "tablet"
)

// Dispositivo representa un kiosk/tablet autorizado, autenticado por secreto
// compartido y atado 1:1 a un Local.
type Dispositivo struct {
	ID           int64
	LocalID      int64
	DeviceID     string // identificador único por dispositivo
	SecretKey    string
	Nombre       string
	Tipo         string // kiosk, admin_pc, tablet
	Activo       bool
	CreatedAt    time.Time
	UltimoAcceso *time.Time
}
