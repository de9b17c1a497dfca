package http

import (
	"github.com/gofiber/fiber/v2"
	appsync "github.com/jhoicas/Conciliador-api/internal/application/sync"
	"github.com/jhoicas/Conciliador-api/internal/application/usecase"
	"github.com/jhoicas/Conciliador-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SyncUC      *appsync.UseCase
	SyncRuns    repository.SyncRunRepository
	WarehouseUC *usecase.WarehouseUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Syncs: disparar es de operador, consultar lo puede hacer cualquier rol
	syncs := protected.Group("/syncs")
	syncHandler := NewSyncHandler(deps.SyncUC, deps.SyncRuns)
	syncs.Post("/", RequireRole(RoleOperator), syncHandler.Trigger)
	syncs.Get("/", RequireRole(RoleOperator, RoleReader), syncHandler.List)
	syncs.Get("/:id", RequireRole(RoleOperator, RoleReader), syncHandler.GetByID)

	// Catálogo de bodegas: edición de operador, lectura de cualquier rol
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", RequireRole(RoleOperator, RoleReader), warehouseHandler.Catalog)
	warehouses.Put("/", RequireRole(RoleOperator), warehouseHandler.UpsertWarehouse)
	warehouses.Put("/aliases", RequireRole(RoleOperator), warehouseHandler.UpsertAlias)
	warehouses.Delete("/aliases/:alias", RequireRole(RoleOperator), warehouseHandler.DeleteAlias)
}
