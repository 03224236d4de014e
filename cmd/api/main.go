package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kiosko-api/internal/application/auth"
	"github.com/jhoicas/kiosko-api/internal/application/catalogo"
	"github.com/jhoicas/kiosko-api/internal/application/menu"
	"github.com/jhoicas/kiosko-api/internal/cache"
	"github.com/jhoicas/kiosko-api/internal/infrastructure/postgres"
	"github.com/jhoicas/kiosko-api/internal/infrastructure/storage"
	"github.com/jhoicas/kiosko-api/internal/interfaces/http"
	"github.com/jhoicas/kiosko-api/internal/realtime"
	"github.com/jhoicas/kiosko-api/pkg/config"
	"github.com/jhoicas/kiosko-api/pkg/logger"
)

const (
	menuCacheLocales = 256
	menuCacheTTL     = 5 * time.Minute
)

func main() {
	// Los precios serializan como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	imageStore, err := storage.NewImageStore(ctx, cfg.Storage.Dir, cfg.Storage.PublicURL)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir storage de imágenes")
	}
	defer imageStore.Close()

	localRepo := postgres.NewLocalRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	dispositivoRepo := postgres.NewDispositivoRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	carruselRepo := postgres.NewCarruselRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registry := realtime.NewRegistry(log)
	menuCache := cache.NewMenuCache(menuCacheLocales, menuCacheTTL)

	authUC := auth.NewAuthUseCase(usuarioRepo, dispositivoRepo, auth.JWTConfig{
		Secret:    cfg.JWT.Secret,
		DeviceTTL: time.Duration(cfg.JWT.DeviceExpMinutes) * time.Minute,
		AdminTTL:  time.Duration(cfg.JWT.AdminExpMinutes) * time.Minute,
		Issuer:    cfg.JWT.Issuer,
	}, auth.DemoConfig{
		DeviceID: cfg.Demo.DeviceID,
		LocalID:  cfg.Demo.LocalID,
	}, log)

	productoUC := catalogo.NewProductoUseCase(productoRepo, categoriaRepo, menuCache, registry, imageStore, log)
	categoriaUC := catalogo.NewCategoriaUseCase(categoriaRepo, productoRepo, txRunner, menuCache, registry, imageStore, log)
	menuUC := menu.NewMenuUseCase(localRepo, categoriaRepo, productoRepo, carruselRepo, menuCache, registry, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kiosko API",
	}))

	// Imágenes de productos servidas como estático bajo el prefijo público.
	app.Static("/imagenes", cfg.Storage.Dir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "conexiones_ws": registry.Count()})
	})

	http.Router(app, http.RouterDeps{
		AuthUC:      authUC,
		ProductoUC:  productoUC,
		CategoriaUC: categoriaUC,
		MenuUC:      menuUC,
		Registry:    registry,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
