package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	"github.com/jhoicas/kiosko-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// GetActiveByNombre obtiene un usuario activo por nombre de login.
func (r *UsuarioRepo) GetActiveByNombre(nombre string) (*entity.Usuario, error) {
	query := `
		SELECT id, local_id, nombre, email, password_hash, rol, activo, created_at, ultimo_acceso
		FROM usuarios WHERE nombre = $1 AND activo = true`
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, nombre).Scan(
		&u.ID, &u.LocalID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol,
		&u.Activo, &u.CreatedAt, &u.UltimoAcceso,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// TouchUltimoAcceso registra el último login del usuario.
func (r *UsuarioRepo) TouchUltimoAcceso(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET ultimo_acceso = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch usuario: %w", err)
	}
	return nil
}
