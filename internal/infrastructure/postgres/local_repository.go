package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	"github.com/jhoicas/kiosko-api/internal/domain/repository"
)

var _ repository.LocalRepository = (*LocalRepo)(nil)

// LocalRepo implementación del puerto LocalRepository sobre PostgreSQL.
type LocalRepo struct {
	q Querier
}

// NewLocalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocalRepository(q Querier) *LocalRepo {
	return &LocalRepo{q: q}
}

// GetActiveByID obtiene un local activo por ID.
func (r *LocalRepo) GetActiveByID(id int64) (*entity.Local, error) {
	query := `
		SELECT id, nombre, direccion, telefono, email, timezone, activo, created_at, updated_at
		FROM locales WHERE id = $1 AND activo = true`
	var l entity.Local
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.Nombre, &l.Direccion, &l.Telefono, &l.Email, &l.Timezone,
		&l.Activo, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get local: %w", err)
	}
	return &l, nil
}

// ListActive lista los locales activos ordenados por nombre.
func (r *LocalRepo) ListActive() ([]*entity.Local, error) {
	query := `
		SELECT id, nombre, direccion, telefono, email, timezone, activo, created_at, updated_at
		FROM locales WHERE activo = true ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Local
	for rows.Next() {
		var l entity.Local
		if err := rows.Scan(&l.ID, &l.Nombre, &l.Direccion, &l.Telefono, &l.Email,
			&l.Timezone, &l.Activo, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan local: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
