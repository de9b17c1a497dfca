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
	_ "github.com/jhoicas/Conciliador-api/docs"
	"github.com/jhoicas/Conciliador-api/internal/application/projection"
	appsync "github.com/jhoicas/Conciliador-api/internal/application/sync"
	"github.com/jhoicas/Conciliador-api/internal/application/usecase"
	"github.com/jhoicas/Conciliador-api/internal/infrastructure/marketplace"
	"github.com/jhoicas/Conciliador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Conciliador-api/internal/infrastructure/sheets"
	httpRouter "github.com/jhoicas/Conciliador-api/internal/interfaces/http"
	"github.com/jhoicas/Conciliador-api/pkg/config"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

// @title                      Conciliador API
// @version                    1.0
// @description                Conciliación de inventario de marketplace: feeds de stock y pedidos, catálogo de bodegas canónicas y proyección a hoja de cálculo.
// @BasePath                   /
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
// @description                Formato: Bearer <token>
func main() {
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

	catalogRepo := postgres.NewWarehouseCatalogRepository(pool)
	runRepo := postgres.NewSyncRunRepository(pool)

	// Feeds del marketplace: un solo cliente implementa los tres puertos
	feeds := marketplace.NewClient(cfg.Marketplace, cfg.Sync.RetryAttempts, cfg.Sync.RetryBackoff, log)

	// Destino tabular: la política de reintentos de cuota vive en el motor
	grid := sheets.NewClient(cfg.Sheet, log)
	projector := projection.NewEngine(grid, cfg.Sync.LookbackDays, cfg.Sync.RetryAttempts, cfg.Sync.RetryBackoff, log)

	syncUC := appsync.NewUseCase(
		feeds, feeds, feeds,
		catalogRepo, runRepo, projector,
		cfg.Sync.LookbackDays, log,
	)
	warehouseUC := usecase.NewWarehouseUseCase(catalogRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// El JSON se regenera con `swag init -g cmd/api/main.go` tras tocar anotaciones
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Conciliador API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SyncUC:      syncUC,
		SyncRuns:    runRepo,
		WarehouseUC: warehouseUC,
		JWTSecret:   cfg.JWT.Secret,
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
