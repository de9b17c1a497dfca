package repository

import (
	"context"

	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
)

// WarehouseCatalogRepository define el puerto para el catálogo de bodegas canónicas
// y sus alias crudos. El catálogo se carga completo al inicio de cada sincronización
// y se convierte en una tabla inmutable para el normalizador.
type WarehouseCatalogRepository interface {
	ListWarehouses(ctx context.Context) ([]entity.CanonicalWarehouse, error)
	ListAliases(ctx context.Context) ([]entity.WarehouseAlias, error)
	UpsertWarehouse(ctx context.Context, w entity.CanonicalWarehouse) error
	UpsertAlias(ctx context.Context, a entity.WarehouseAlias) error
	DeleteAlias(ctx context.Context, alias string) error
}
