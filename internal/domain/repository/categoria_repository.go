package repository

import "github.com/jhoicas/kiosko-api/internal/domain/entity"

// CategoriaRepository define el puerto de persistencia para Categoria.
type CategoriaRepository interface {
	Create(categoria *entity.Categoria) error
	GetByIDAndLocal(id, localID int64) (*entity.Categoria, error)
	GetByLocalAndNombre(localID int64, nombre string) (*entity.Categoria, error)
	ListActiveByLocal(localID int64) ([]*entity.Categoria, error)
	// ListByIDsAndLocal devuelve solo las categorías de ids que pertenecen al
	// local; el caller compara longitudes para detectar ids ajenos.
	ListByIDsAndLocal(localID int64, ids []int64) ([]*entity.Categoria, error)
	CountByLocal(localID int64) (int, error)
	Update(categoria *entity.Categoria) error
	UpdateOrden(id int64, orden int) error
	Delete(id int64) error
}
