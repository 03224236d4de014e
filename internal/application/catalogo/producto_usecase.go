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

// ProductoUseCase CRUD de productos de un local. Cada mutación exitosa
// invalida el cache del menú del local y después difunde el evento a sus
// kiosks: un kiosk que reacciona al evento re-leyendo nunca ve datos viejos
// del cache.
type ProductoUseCase struct {
	productoRepo  repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	cache         MenuInvalidator
	broadcaster   Broadcaster
	imagenes      ImageStore
	log           *logger.Logger
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(
	productoRepo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	cache MenuInvalidator,
	broadcaster Broadcaster,
	imagenes ImageStore,
	log *logger.Logger,
) *ProductoUseCase {
	return &ProductoUseCase{
		productoRepo:  productoRepo,
		categoriaRepo: categoriaRepo,
		cache:         cache,
		broadcaster:   broadcaster,
		imagenes:      imagenes,
		log:           log,
	}
}

// List lista los productos del local con su categoría (panel de admin).
func (uc *ProductoUseCase) List(localID int64) ([]dto.ProductoResponse, error) {
	list, err := uc.productoRepo.ListByLocal(localID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, pc := range list {
		items = append(items, *toProductoResponse(pc.Producto, pc.Categoria))
	}
	return items, nil
}

// Create crea un producto en el local. La categoría referenciada debe
// pertenecer al mismo local; si no, ErrCrossTenantRef sin tocar el store.
func (uc *ProductoUseCase) Create(ctx context.Context, localID int64, in dto.CreateProductoRequest, imagen *dto.ImagenUpload) (*dto.ProductoResponse, error) {
	if in.Precio.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	categoria, err := uc.categoriaRepo.GetByIDAndLocal(in.CategoriaID, localID)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrCrossTenantRef
	}

	imagenURL := ""
	if imagen != nil {
		imagenURL, err = uc.imagenes.Upload(ctx, imagen.Filename, imagen.ContentType, imagen.Data)
		if err != nil {
			return nil, err
		}
	}

	disponible := true
	if in.Disponible != nil {
		disponible = *in.Disponible
	}
	destacado := false
	if in.Destacado != nil {
		destacado = *in.Destacado
	}

	now := time.Now()
	categoriaID := in.CategoriaID
	producto := &entity.Producto{
		LocalID:     localID,
		CategoriaID: &categoriaID,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Precio:      in.Precio,
		ImagenURL:   imagenURL,
		Disponible:  disponible,
		Destacado:   destacado,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productoRepo.Create(producto); err != nil {
		return nil, err
	}

	out := toProductoResponse(producto, &entity.CategoriaResumen{ID: categoria.ID, Nombre: categoria.Nombre})
	uc.cache.Invalidate(localID)
	uc.broadcaster.Broadcast(realtime.EventoProductoCreado, out, localID)
	return out, nil
}

// Update actualiza un producto del local (campos opcionales). Si llega imagen
// nueva, la anterior se borra del storage recién después de confirmar el
// update del registro, y un fallo en ese borrado solo se registra.
func (uc *ProductoUseCase) Update(ctx context.Context, productoID, localID int64, in dto.UpdateProductoRequest, imagen *dto.ImagenUpload) (*dto.ProductoResponse, error) {
	producto, err := uc.productoRepo.GetByIDAndLocal(productoID, localID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	if in.CategoriaID != nil {
		categoria, err := uc.categoriaRepo.GetByIDAndLocal(*in.CategoriaID, localID)
		if err != nil {
			return nil, err
		}
		if categoria == nil {
			return nil, domain.ErrCrossTenantRef
		}
		producto.CategoriaID = in.CategoriaID
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.Precio != nil {
		if in.Precio.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.Precio = *in.Precio
	}
	if in.Disponible != nil {
		producto.Disponible = *in.Disponible
	}
	if in.Destacado != nil {
		producto.Destacado = *in.Destacado
	}

	imagenAnterior := ""
	if imagen != nil {
		imagenAnterior = producto.ImagenURL
		url, err := uc.imagenes.Upload(ctx, imagen.Filename, imagen.ContentType, imagen.Data)
		if err != nil {
			return nil, err
		}
		producto.ImagenURL = url
	}

	producto.UpdatedAt = time.Now()
	if err := uc.productoRepo.Update(producto); err != nil {
		return nil, err
	}

	// La imagen vieja se limpia solo después de confirmar el update.
	if imagenAnterior != "" {
		if err := uc.imagenes.Delete(ctx, imagenAnterior); err != nil {
			uc.log.Warn().Err(err).Str("imagen_url", imagenAnterior).Msg("no se pudo borrar la imagen anterior")
		}
	}

	out := toProductoResponse(producto, uc.resumenCategoria(producto, localID))
	uc.cache.Invalidate(localID)
	uc.broadcaster.Broadcast(realtime.EventoProductoActualizado, out, localID)
	return out, nil
}

// Delete elimina un producto del local. Su imagen se borra best-effort después
// del delete del registro.
func (uc *ProductoUseCase) Delete(ctx context.Context, productoID, localID int64) (*dto.EliminarProductoResponse, error) {
	producto, err := uc.productoRepo.GetByIDAndLocal(productoID, localID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	if err := uc.productoRepo.Delete(productoID); err != nil {
		return nil, err
	}
	if producto.ImagenURL != "" {
		if err := uc.imagenes.Delete(ctx, producto.ImagenURL); err != nil {
			uc.log.Warn().Err(err).Str("imagen_url", producto.ImagenURL).Msg("no se pudo borrar la imagen")
		}
	}

	uc.cache.Invalidate(localID)
	uc.broadcaster.Broadcast(realtime.EventoProductoEliminado, map[string]int64{"id": productoID}, localID)
	return &dto.EliminarProductoResponse{Mensaje: "Producto eliminado correctamente", ProductoID: productoID}, nil
}

// resumenCategoria busca el resumen de la categoría actual del producto.
// Devuelve nil si el producto quedó sin categoría.
func (uc *ProductoUseCase) resumenCategoria(producto *entity.Producto, localID int64) *entity.CategoriaResumen {
	if producto.CategoriaID == nil {
		return nil
	}
	categoria, err := uc.categoriaRepo.GetByIDAndLocal(*producto.CategoriaID, localID)
	if err != nil || categoria == nil {
		return nil
	}
	return &entity.CategoriaResumen{ID: categoria.ID, Nombre: categoria.Nombre}
}

func toProductoResponse(p *entity.Producto, c *entity.CategoriaResumen) *dto.ProductoResponse {
	out := &dto.ProductoResponse{
		ID:          p.ID,
		LocalID:     p.LocalID,
		CategoriaID: p.CategoriaID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Disponible:  p.Disponible,
		Destacado:   p.Destacado,
		ImagenURL:   p.ImagenURL,
	}
	if c != nil {
		out.Categorias = &dto.CategoriaResumenResponse{ID: c.ID, Nombre: c.Nombre}
	}
	return out
}
