package entity

import "time"

// Local representa un punto de venta físico (tenant). Todo dato del catálogo,
// usuarios y dispositivos está aislado por LocalID. Los locales se crean por
// aprovisionamiento externo; el backend solo los lee.
type Local struct {
	ID        int64
	Nombre    string
	Direccion string
	Telefono  string
	Email     string
	Timezone  string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
