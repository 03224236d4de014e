package catalogo

import (
	"context"

	"github.com/jhoicas/kiosko-api/internal/domain/repository"
)

// Broadcaster puerto hacia el registry de conexiones en tiempo real.
// Lo implementa *realtime.Registry.
type Broadcaster interface {
	Broadcast(evento string, datos interface{}, localID int64)
	BroadcastToLocal(localID int64, evento string, datos interface{})
}

// MenuInvalidator puerto hacia el cache del menú. Lo implementa *cache.MenuCache.
type MenuInvalidator interface {
	Invalidate(localID int64)
}

// ImageStore puerto hacia el almacenamiento de imágenes de productos.
// Delete es best-effort: los casos de uso registran el fallo sin propagarlo,
// porque la mutación del registro ya quedó confirmada.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// TxRunner ejecuta callbacks con repos atados a una misma transacción
// (Commit si fn retorna nil, Rollback si no). RunCategorias cubre el
// reordenamiento; RunCatalogo da categorías y productos juntos para la
// cascada del delete de categoría.
type TxRunner interface {
	RunCategorias(ctx context.Context, fn func(repo repository.CategoriaRepository) error) error
	RunCatalogo(ctx context.Context, fn func(categorias repository.CategoriaRepository, productos repository.ProductoRepository) error) error
}
