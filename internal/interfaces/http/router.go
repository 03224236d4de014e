package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kiosko-api/internal/application/auth"
	"github.com/jhoicas/kiosko-api/internal/application/catalogo"
	"github.com/jhoicas/kiosko-api/internal/application/menu"
	"github.com/jhoicas/kiosko-api/internal/realtime"
	"github.com/jhoicas/kiosko-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductoUC  *catalogo.ProductoUseCase
	CategoriaUC *catalogo.CategoriaUseCase
	MenuUC      *menu.MenuUseCase
	Registry    *realtime.Registry
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/device", authHandler.DeviceAuth)
	api.Post("/admin/login", authHandler.AdminLogin)

	// Rutas protegidas (requieren Bearer Token de dispositivo o admin)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Get("/verify", authHandler.Verify)

	// Menú (lecturas del kiosk; el local sale del token o de ?local_id autorizado)
	menuHandler := NewMenuHandler(deps.MenuUC, deps.AuthUC)
	menuGroup := protected.Group("/menu")
	menuGroup.Get("/productos", menuHandler.Productos)
	menuGroup.Get("/categorias", menuHandler.Categorias)
	menuGroup.Get("/completo", menuHandler.Completo)
	menuGroup.Get("/local", menuHandler.Local)

	// Carrusel: lectura para cualquier identidad, escritura solo admin
	carruselHandler := NewCarruselHandler(deps.MenuUC, deps.AuthUC)
	protected.Get("/carrusel/config", carruselHandler.Get)
	protected.Put("/carrusel/config", RequireAdmin(), carruselHandler.Update)

	// Panel de administración (admin real o dispositivo demo)
	admin := protected.Group("/admin", RequireAdmin())
	admin.Get("/verificar", authHandler.VerificarAdmin)
	admin.Get("/locales", menuHandler.LocalesList)

	productoHandler := NewProductoHandler(deps.ProductoUC, deps.AuthUC)
	admin.Get("/productos", productoHandler.List)
	admin.Post("/productos", productoHandler.Create)
	admin.Put("/productos/:id", productoHandler.Update)
	admin.Delete("/productos/:id", productoHandler.Delete)

	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC, deps.AuthUC)
	admin.Get("/categorias", categoriaHandler.List)
	admin.Post("/categorias", categoriaHandler.Create)
	// "reordenar" antes de ":id" para que el router no lo capture como parámetro.
	admin.Put("/categorias/reordenar", categoriaHandler.Reordenar)
	admin.Put("/categorias/:id", categoriaHandler.Update)
	admin.Delete("/categorias/:id", categoriaHandler.Delete)

	// WebSocket (token por query param)
	wsHandler := NewWSHandler(deps.AuthUC, deps.Registry, deps.Log)
	app.Use("/ws", wsHandler.UpgradeRequired)
	app.Get("/ws/local", wsHandler.Handle())
}
