package repository

import "github.com/jhoicas/kiosko-api/internal/domain/entity"

// ProductoConCategoria producto con el resumen denormalizado de su categoría.
type ProductoConCategoria struct {
	Producto  *entity.Producto
	Categoria *entity.CategoriaResumen // nil si el producto no tiene categoría
}

// ProductoRepository define el puerto de persistencia para Producto.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByIDAndLocal(id, localID int64) (*entity.Producto, error)
	// ListByLocal lista productos del local con su categoría, ordenados para
	// el menú del kiosk (destacados primero, luego por nombre).
	ListByLocal(localID int64) ([]*ProductoConCategoria, error)
	ListByCategoria(categoriaID int64) ([]*entity.Producto, error)
	Update(producto *entity.Producto) error
	Delete(id int64) error
	// DeleteByCategoria elimina todos los productos de una categoría y
	// devuelve cuántos había.
	DeleteByCategoria(categoriaID int64) (int, error)
}
