package catalogo

import (
	"context"
	"time"

	"github.com/jhoicas/kiosko-api/internal/application/dto"
	"github.com/jhoicas/kiosko-api/internal/domain"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	"github.com/jhoicas/kiosko-api/internal/domain/repository"
	"github.com/jhoicas/kiosko-api/internal/realtime"
	"github.com/jhoicas/kiosko-api/pkg/logger"
)

// CategoriaUseCase CRUD y reordenamiento de categorías de un local. Igual que
// con productos, toda mutación invalida el cache del menú antes de difundir.
type CategoriaUseCase struct {
	categoriaRepo repository.CategoriaRepository
	productoRepo  repository.ProductoRepository
	tx            TxRunner
	cache         MenuInvalidator
	broadcaster   Broadcaster
	imagenes      ImageStore
	log           *logger.Logger
}

// NewCategoriaUseCase construye el caso de uso.
func NewCategoriaUseCase(
	categoriaRepo repository.CategoriaRepository,
	productoRepo repository.ProductoRepository,
	tx TxRunner,
	cache MenuInvalidator,
	broadcaster Broadcaster,
	imagenes ImageStore,
	log *logger.Logger,
) *CategoriaUseCase {
	return &CategoriaUseCase{
		categoriaRepo: categoriaRepo,
		productoRepo:  productoRepo,
		tx:            tx,
		cache:         cache,
		broadcaster:   broadcaster,
		imagenes:      imagenes,
		log:           log,
	}
}

// List lista las categorías activas del local, ordenadas por orden.
func (uc *CategoriaUseCase) List(localID int64) ([]dto.CategoriaResponse, error) {
	list, err := uc.categoriaRepo.ListActiveByLocal(localID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoriaResponse(c))
	}
	return items, nil
}

// Create crea una categoría al final del orden del local. El nombre es único
// por local: si ya existe, ErrDuplicate.
func (uc *CategoriaUseCase) Create(localID int64, in dto.CreateCategoriaRequest) (*dto.CategoriaResponse, error) {
	existente, err := uc.categoriaRepo.GetByLocalAndNombre(localID, in.Nombre)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}

	total, err := uc.categoriaRepo.CountByLocal(localID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	categoria := &entity.Categoria{
		LocalID:     localID,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Orden:       total + 1,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoriaRepo.Create(categoria); err != nil {
		return nil, err
	}

	out := toCategoriaResponse(categoria)
	uc.cache.Invalidate(localID)
	uc.broadcaster.Broadcast(realtime.EventoCategoriaCreada, out, localID)
	return out, nil
}

// Update renombra o re-describe una categoría del local. El nombre nuevo no
// puede chocar con otra categoría del mismo local.
func (uc *CategoriaUseCase) Update(categoriaID, localID int64, in dto.UpdateCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := uc.categoriaRepo.GetByIDAndLocal(categoriaID, localID)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNotFound
	}

	if in.Nombre != categoria.Nombre {
		existente, err := uc.categoriaRepo.GetByLocalAndNombre(localID, in.Nombre)
		if err != nil {
			return nil, err
		}
		if existente != nil && existente.ID != categoriaID {
			return nil, domain.ErrDuplicate
		}
	}

	categoria.Nombre = in.Nombre
	if in.Descripcion != nil {
		categoria.Descripcion = *in.Descripcion
	}
	categoria.UpdatedAt = time.Now()
	if err := uc.categoriaRepo.Update(categoria); err != nil {
		return nil, err
	}

	out := toCategoriaResponse(categoria)
	uc.cache.Invalidate(localID)
	uc.broadcaster.Broadcast(realtime.EventoCategoriaActualizada, out, localID)
	return out, nil
}

// Delete elimina una categoría del local junto con todos sus productos dentro
// de una transacción (si el delete de la categoría falla, los productos no
// caen), e informa cuántos productos cayeron. Las imágenes de esos productos
// se borran best-effort después del commit.
func (uc *CategoriaUseCase) Delete(ctx context.Context, categoriaID, localID int64) (*dto.EliminarCategoriaResponse, error) {
	categoria, err := uc.categoriaRepo.GetByIDAndLocal(categoriaID, localID)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNotFound
	}

	productos, err := uc.productoRepo.ListByCategoria(categoriaID)
	if err != nil {
		return nil, err
	}

	var eliminados int
	err = uc.tx.RunCatalogo(ctx, func(catRepo repository.CategoriaRepository, prodRepo repository.ProductoRepository) error {
		n, err := prodRepo.DeleteByCategoria(categoriaID)
		if err != nil {
			return err
		}
		eliminados = n
		return catRepo.Delete(categoriaID)
	})
	if err != nil {
		return nil, err
	}

	for _, p := range productos {
		if p.ImagenURL == "" {
			continue
		}
		if err := uc.imagenes.Delete(ctx, p.ImagenURL); err != nil {
			uc.log.Warn().Err(err).Str("imagen_url", p.ImagenURL).Msg("no se pudo borrar la imagen del producto eliminado")
		}
	}

	uc.cache.Invalidate(localID)
	uc.broadcaster.Broadcast(realtime.EventoCategoriaEliminada, map[string]interface{}{
		"id":                   categoriaID,
		"productos_eliminados": eliminados,
	}, localID)
	return &dto.EliminarCategoriaResponse{
		Mensaje:             "Categoría eliminada correctamente",
		CategoriaID:         categoriaID,
		ProductosEliminados: eliminados,
	}, nil
}

// Reordenar aplica el nuevo orden completo de las categorías del local dentro
// de una transacción: si algún id no existe o pertenece a otro local, no se
// persiste ningún cambio.
func (uc *CategoriaUseCase) Reordenar(ctx context.Context, localID int64, orden []int64) (*dto.ReordenarCategoriasResponse, error) {
	if len(orden) == 0 {
		return nil, domain.ErrInvalidInput
	}

	err := uc.tx.RunCategorias(ctx, func(repo repository.CategoriaRepository) error {
		propias, err := repo.ListByIDsAndLocal(localID, orden)
		if err != nil {
			return err
		}
		if len(propias) != len(orden) {
			return domain.ErrInvalidInput
		}
		for pos, id := range orden {
			if err := repo.UpdateOrden(id, pos+1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(localID)
	uc.broadcaster.Broadcast(realtime.EventoCategoriasReordenadas, map[string]interface{}{"orden": orden}, localID)
	return &dto.ReordenarCategoriasResponse{Mensaje: "Categorías reordenadas correctamente", Orden: orden}, nil
}

func toCategoriaResponse(c *entity.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Orden:       c.Orden,
	}
}
