package entity

import "time"

// Roles válidos para Usuario. SuperAdmin puede operar sobre cualquier local.
const (
	RolEmpleado   = "empleado"
	RolAdmin      = "admin"
	RolSuperAdmin = "super_admin"
)

// Usuario representa un usuario administrador del sistema (pertenece a un Local).
type Usuario struct {
	ID           int64
	LocalID      int64
	Nombre       string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Rol          string // empleado, admin, super_admin
	Activo       bool
	CreatedAt    time.Time
	UltimoAcceso *time.Time
}
