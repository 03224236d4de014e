package menu

import (
	"time"

	"github.com/jhoicas/kiosko-api/internal/application/dto"
	"github.com/jhoicas/kiosko-api/internal/domain"
	"github.com/jhoicas/kiosko-api/internal/domain/entity"
	"github.com/jhoicas/kiosko-api/internal/domain/repository"
	"github.com/jhoicas/kiosko-api/internal/realtime"
	"github.com/jhoicas/kiosko-api/pkg/logger"
)

// MenuCache puerto de lectura/escritura del cache de menú por local.
// Lo implementa *cache.MenuCache.
type MenuCache interface {
	Get(localID int64) ([]dto.ProductoResponse, bool)
	Set(localID int64, productos []dto.ProductoResponse)
}

// Broadcaster puerto hacia el registry en tiempo real.
type Broadcaster interface {
	BroadcastToLocal(localID int64, evento string, datos interface{})
}

// MenuUseCase lecturas del menú que consumen los kiosks, más la configuración
// del carrusel. El listado de productos por local es read-through sobre el
// cache: miss → base → Set.
type MenuUseCase struct {
	localRepo     repository.LocalRepository
	categoriaRepo repository.CategoriaRepository
	productoRepo  repository.ProductoRepository
	carruselRepo  repository.CarruselRepository
	cache         MenuCache
	broadcaster   Broadcaster
	log           *logger.Logger
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(
	localRepo repository.LocalRepository,
	categoriaRepo repository.CategoriaRepository,
	productoRepo repository.ProductoRepository,
	carruselRepo repository.CarruselRepository,
	cache MenuCache,
	broadcaster Broadcaster,
	log *logger.Logger,
) *MenuUseCase {
	return &MenuUseCase{
		localRepo:     localRepo,
		categoriaRepo: categoriaRepo,
		productoRepo:  productoRepo,
		carruselRepo:  carruselRepo,
		cache:         cache,
		broadcaster:   broadcaster,
		log:           log,
	}
}

// GetProductos lista los productos del local para el kiosk, sirviendo desde el
// cache cuando hay hit.
func (uc *MenuUseCase) GetProductos(localID int64) ([]dto.ProductoResponse, error) {
	if cached, ok := uc.cache.Get(localID); ok {
		return cached, nil
	}

	list, err := uc.productoRepo.ListByLocal(localID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, pc := range list {
		items = append(items, toProductoResponse(pc.Producto, pc.Categoria))
	}
	uc.cache.Set(localID, items)
	return items, nil
}

// GetCategorias lista las categorías activas del local en su orden de menú.
func (uc *MenuUseCase) GetCategorias(localID int64) ([]dto.CategoriaResponse, error) {
	list, err := uc.categoriaRepo.ListActiveByLocal(localID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoriaResponse{
			ID:          c.ID,
			Nombre:      c.Nombre,
			Descripcion: c.Descripcion,
			Orden:       c.Orden,
		})
	}
	return items, nil
}

// GetLocales lista los locales activos.
func (uc *MenuUseCase) GetLocales() ([]dto.LocalResponse, error) {
	list, err := uc.localRepo.ListActive()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocalResponse, 0, len(list))
	for _, l := range list {
		items = append(items, toLocalResponse(l))
	}
	return items, nil
}

// GetLocal devuelve los datos públicos de un local activo.
func (uc *MenuUseCase) GetLocal(localID int64) (*dto.LocalResponse, error) {
	local, err := uc.localRepo.GetActiveByID(localID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, domain.ErrNotFound
	}
	out := toLocalResponse(local)
	return &out, nil
}

// GetMenuCompleto arma el menú de bootstrap del kiosk: con localID > 0 solo ese
// local; con localID == 0 todos los locales activos (vista de monitoreo). Solo
// aparecen categorías activas con al menos un producto.
func (uc *MenuUseCase) GetMenuCompleto(localID int64) (*dto.MenuCompletoResponse, error) {
	var locales []*entity.Local
	if localID > 0 {
		local, err := uc.localRepo.GetActiveByID(localID)
		if err != nil {
			return nil, err
		}
		if local == nil {
			return nil, domain.ErrNotFound
		}
		locales = []*entity.Local{local}
	} else {
		var err error
		locales, err = uc.localRepo.ListActive()
		if err != nil {
			return nil, err
		}
	}

	out := &dto.MenuCompletoResponse{Locales: make([]dto.LocalConMenu, 0, len(locales))}
	for _, local := range locales {
		conMenu, err := uc.menuDeLocal(local)
		if err != nil {
			return nil, err
		}
		out.Locales = append(out.Locales, *conMenu)
	}
	return out, nil
}

func (uc *MenuUseCase) menuDeLocal(local *entity.Local) (*dto.LocalConMenu, error) {
	categorias, err := uc.categoriaRepo.ListActiveByLocal(local.ID)
	if err != nil {
		return nil, err
	}
	productos, err := uc.GetProductos(local.ID)
	if err != nil {
		return nil, err
	}

	porCategoria := make(map[int64][]dto.ProductoResponse)
	for _, p := range productos {
		if p.CategoriaID == nil {
			continue
		}
		porCategoria[*p.CategoriaID] = append(porCategoria[*p.CategoriaID], p)
	}

	conMenu := &dto.LocalConMenu{
		ID:         local.ID,
		Nombre:     local.Nombre,
		Direccion:  local.Direccion,
		Telefono:   local.Telefono,
		Categorias: make([]dto.CategoriaConProductos, 0, len(categorias)),
	}
	for _, c := range categorias {
		propios := porCategoria[c.ID]
		if len(propios) == 0 {
			continue
		}
		conMenu.Categorias = append(conMenu.Categorias, dto.CategoriaConProductos{
			ID:          c.ID,
			Nombre:      c.Nombre,
			Descripcion: c.Descripcion,
			Productos:   propios,
		})
	}
	return conMenu, nil
}

// GetCarruselConfig devuelve la configuración del carrusel del local; si nunca
// se configuró, el default es rotar todas las categorías.
func (uc *MenuUseCase) GetCarruselConfig(localID int64) (*dto.CarruselConfigResponse, error) {
	config, err := uc.carruselRepo.GetByLocal(localID)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return &dto.CarruselConfigResponse{Mode: entity.CarruselModoTodas, SelectedCategories: []string{}}, nil
	}
	return toCarruselResponse(config), nil
}

// UpdateCarruselConfig persiste la configuración del carrusel y se la difunde
// a los kiosks del local.
func (uc *MenuUseCase) UpdateCarruselConfig(localID int64, in dto.CarruselConfigRequest) (*dto.CarruselConfigResponse, error) {
	if in.Mode != entity.CarruselModoTodas && in.Mode != entity.CarruselModoSeleccion {
		return nil, domain.ErrInvalidInput
	}
	seleccionadas := in.SelectedCategories
	if seleccionadas == nil {
		seleccionadas = []string{}
	}

	config := &entity.ConfiguracionCarrusel{
		LocalID:                 localID,
		Modo:                    in.Mode,
		CategoriasSeleccionadas: seleccionadas,
		UpdatedAt:               time.Now(),
	}
	if err := uc.carruselRepo.Upsert(config); err != nil {
		return nil, err
	}

	out := toCarruselResponse(config)
	uc.broadcaster.BroadcastToLocal(localID, realtime.EventoCarruselActualizado, out)
	return out, nil
}

func toCarruselResponse(c *entity.ConfiguracionCarrusel) *dto.CarruselConfigResponse {
	seleccionadas := c.CategoriasSeleccionadas
	if seleccionadas == nil {
		seleccionadas = []string{}
	}
	return &dto.CarruselConfigResponse{Mode: c.Modo, SelectedCategories: seleccionadas}
}

func toLocalResponse(l *entity.Local) dto.LocalResponse {
	return dto.LocalResponse{
		ID:        l.ID,
		Nombre:    l.Nombre,
		Direccion: l.Direccion,
		Telefono:  l.Telefono,
	}
}

func toProductoResponse(p *entity.Producto, c *entity.CategoriaResumen) dto.ProductoResponse {
	out := dto.ProductoResponse{
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
