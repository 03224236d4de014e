package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	"github.com/jhoicas/kiosko-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL.
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un producto nuevo y completa su ID.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	query := `
		INSERT INTO productos (local_id, categoria_id, nombre, descripcion, precio, imagen_url, disponible, destacado, orden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		producto.LocalID, producto.CategoriaID, producto.Nombre, producto.Descripcion,
		producto.Precio, producto.ImagenURL, producto.Disponible, producto.Destacado,
		producto.Orden, producto.CreatedAt, producto.UpdatedAt,
	).Scan(&producto.ID)
	if err != nil {
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByIDAndLocal obtiene un producto por ID acotado al local.
func (r *ProductoRepo) GetByIDAndLocal(id, localID int64) (*entity.Producto, error) {
	query := `
		SELECT id, local_id, categoria_id, nombre, descripcion, precio, imagen_url, disponible, destacado, orden, created_at, updated_at
		FROM productos WHERE id = $1 AND local_id = $2`
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), query, id, localID).Scan(
		&p.ID, &p.LocalID, &p.CategoriaID, &p.Nombre, &p.Descripcion, &p.Precio,
		&p.ImagenURL, &p.Disponible, &p.Destacado, &p.Orden, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// ListByLocal lista los productos del local con el resumen de su categoría,
// destacados primero y después alfabético.
func (r *ProductoRepo) ListByLocal(localID int64) ([]*repository.ProductoConCategoria, error) {
	query := `
		SELECT p.id, p.local_id, p.categoria_id, p.nombre, p.descripcion, p.precio,
		       p.imagen_url, p.disponible, p.destacado, p.orden, p.created_at, p.updated_at,
		       c.id, c.nombre
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id
		WHERE p.local_id = $1
		ORDER BY p.destacado DESC, p.nombre`
	rows, err := r.q.Query(context.Background(), query, localID)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var list []*repository.ProductoConCategoria
	for rows.Next() {
		var p entity.Producto
		var catID *int64
		var catNombre *string
		if err := rows.Scan(&p.ID, &p.LocalID, &p.CategoriaID, &p.Nombre, &p.Descripcion,
			&p.Precio, &p.ImagenURL, &p.Disponible, &p.Destacado, &p.Orden,
			&p.CreatedAt, &p.UpdatedAt, &catID, &catNombre); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		item := &repository.ProductoConCategoria{Producto: &p}
		if catID != nil && catNombre != nil {
			item.Categoria = &entity.CategoriaResumen{ID: *catID, Nombre: *catNombre}
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// ListByCategoria lista los productos de una categoría.
func (r *ProductoRepo) ListByCategoria(categoriaID int64) ([]*entity.Producto, error) {
	query := `
		SELECT id, local_id, categoria_id, nombre, descripcion, precio, imagen_url, disponible, destacado, orden, created_at, updated_at
		FROM productos WHERE categoria_id = $1`
	rows, err := r.q.Query(context.Background(), query, categoriaID)
	if err != nil {
		return nil, fmt.Errorf("list productos por categoria: %w", err)
	}
	defer rows.Close()

	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.LocalID, &p.CategoriaID, &p.Nombre, &p.Descripcion,
			&p.Precio, &p.ImagenURL, &p.Disponible, &p.Destacado, &p.Orden,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente.
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos SET categoria_id = $2, nombre = $3, descripcion = $4, precio = $5,
		       imagen_url = $6, disponible = $7, destacado = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.CategoriaID, producto.Nombre, producto.Descripcion,
		producto.Precio, producto.ImagenURL, producto.Disponible, producto.Destacado,
		producto.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductoRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}

// DeleteByCategoria elimina los productos de una categoría y devuelve cuántos había.
func (r *ProductoRepo) DeleteByCategoria(categoriaID int64) (int, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM productos WHERE categoria_id = $1`, categoriaID)
	if err != nil {
		return 0, fmt.Errorf("delete productos por categoria: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}
