package repository

import "github.com/jhoicas/kiosko-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	GetActiveByNombre(nombre string) (*entity.Usuario, error)
	// TouchUltimoAcceso registra el último acceso. Best-effort: el caller
	// ignora el error sin fallar la autenticación.
	TouchUltimoAcceso(id int64) error
}
