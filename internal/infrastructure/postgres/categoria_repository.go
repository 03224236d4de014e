package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kiosko-api/internal/domain"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	"github.com/jhoicas/kiosko-api/internal/domain/repository"
)

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación del puerto CategoriaRepository sobre PostgreSQL.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create persiste una categoría nueva y completa su ID.
func (r *CategoriaRepo) Create(categoria *entity.Categoria) error {
	query := `
		INSERT INTO categorias (local_id, nombre, descripcion, orden, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		categoria.LocalID, categoria.Nombre, categoria.Descripcion, categoria.Orden,
		categoria.Activo, categoria.CreatedAt, categoria.UpdatedAt,
	).Scan(&categoria.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByIDAndLocal obtiene una categoría por ID acotada al local.
func (r *CategoriaRepo) GetByIDAndLocal(id, localID int64) (*entity.Categoria, error) {
	query := `
		SELECT id, local_id, nombre, descripcion, orden, activo, created_at, updated_at
		FROM categorias WHERE id = $1 AND local_id = $2`
	var c entity.Categoria
	err := r.q.QueryRow(context.Background(), query, id, localID).Scan(
		&c.ID, &c.LocalID, &c.Nombre, &c.Descripcion, &c.Orden, &c.Activo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// GetByLocalAndNombre obtiene una categoría por nombre dentro del local.
func (r *CategoriaRepo) GetByLocalAndNombre(localID int64, nombre string) (*entity.Categoria, error) {
	query := `
		SELECT id, local_id, nombre, descripcion, orden, activo, created_at, updated_at
		FROM categorias WHERE local_id = $1 AND nombre = $2`
	var c entity.Categoria
	err := r.q.QueryRow(context.Background(), query, localID, nombre).Scan(
		&c.ID, &c.LocalID, &c.Nombre, &c.Descripcion, &c.Orden, &c.Activo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria por nombre: %w", err)
	}
	return &c, nil
}

// ListActiveByLocal lista las categorías activas del local en orden de menú.
func (r *CategoriaRepo) ListActiveByLocal(localID int64) ([]*entity.Categoria, error) {
	query := `
		SELECT id, local_id, nombre, descripcion, orden, activo, created_at, updated_at
		FROM categorias WHERE local_id = $1 AND activo = true ORDER BY orden, id`
	rows, err := r.q.Query(context.Background(), query, localID)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	return scanCategorias(rows)
}

// ListByIDsAndLocal devuelve solo las categorías de ids que pertenecen al local.
func (r *CategoriaRepo) ListByIDsAndLocal(localID int64, ids []int64) ([]*entity.Categoria, error) {
	query := `
		SELECT id, local_id, nombre, descripcion, orden, activo, created_at, updated_at
		FROM categorias WHERE local_id = $1 AND id = ANY($2)`
	rows, err := r.q.Query(context.Background(), query, localID, ids)
	if err != nil {
		return nil, fmt.Errorf("list categorias por ids: %w", err)
	}
	defer rows.Close()
	return scanCategorias(rows)
}

// CountByLocal cuenta las categorías del local (activas o no).
func (r *CategoriaRepo) CountByLocal(localID int64) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM categorias WHERE local_id = $1`, localID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count categorias: %w", err)
	}
	return n, nil
}

// Update actualiza nombre y descripción de una categoría.
func (r *CategoriaRepo) Update(categoria *entity.Categoria) error {
	query := `
		UPDATE categorias SET nombre = $2, descripcion = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		categoria.ID, categoria.Nombre, categoria.Descripcion, categoria.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update categoria: %w", err)
	}
	return nil
}

// UpdateOrden fija la posición de menú de una categoría.
func (r *CategoriaRepo) UpdateOrden(id int64, orden int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categorias SET orden = $2, updated_at = now() WHERE id = $1`, id, orden)
	if err != nil {
		return fmt.Errorf("update orden categoria: %w", err)
	}
	return nil
}

// Delete elimina una categoría por ID.
func (r *CategoriaRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete categoria: %w", err)
	}
	return nil
}

func scanCategorias(rows pgx.Rows) ([]*entity.Categoria, error) {
	var list []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.LocalID, &c.Nombre, &c.Descripcion, &c.Orden,
			&c.Activo, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
