package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/internal/domain/repository"
)

var _ repository.WarehouseCatalogRepository = (*WarehouseCatalogRepo)(nil)

// WarehouseCatalogRepo implementación del puerto WarehouseCatalogRepository sobre PostgreSQL.
type WarehouseCatalogRepo struct {
	pool *pgxpool.Pool
}

// NewWarehouseCatalogRepository construye el adaptador de persistencia del catálogo de bodegas.
func NewWarehouseCatalogRepository(pool *pgxpool.Pool) *WarehouseCatalogRepo {
	return &WarehouseCatalogRepo{pool: pool}
}

// ListWarehouses devuelve el catálogo completo de bodegas canónicas.
func (r *WarehouseCatalogRepo) ListWarehouses(ctx context.Context) ([]entity.CanonicalWarehouse, error) {
	query := `
		SELECT canonical_name, category, fallback_weight
		FROM canonical_warehouses ORDER BY canonical_name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []entity.CanonicalWarehouse
	for rows.Next() {
		var w entity.CanonicalWarehouse
		if err := rows.Scan(&w.CanonicalName, &w.Category, &w.FallbackWeight); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// ListAliases devuelve todos los alias crudos conocidos.
func (r *WarehouseCatalogRepo) ListAliases(ctx context.Context) ([]entity.WarehouseAlias, error) {
	query := `
		SELECT alias, canonical_name
		FROM warehouse_aliases ORDER BY alias`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	defer rows.Close()
	var list []entity.WarehouseAlias
	for rows.Next() {
		var a entity.WarehouseAlias
		if err := rows.Scan(&a.Alias, &a.CanonicalName); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// UpsertWarehouse inserta o actualiza una bodega canónica.
func (r *WarehouseCatalogRepo) UpsertWarehouse(ctx context.Context, w entity.CanonicalWarehouse) error {
	query := `
		INSERT INTO canonical_warehouses (canonical_name, category, fallback_weight)
		VALUES ($1, $2, $3)
		ON CONFLICT (canonical_name) DO UPDATE SET
			category = EXCLUDED.category,
			fallback_weight = EXCLUDED.fallback_weight`
	_, err := r.pool.Exec(ctx, query, w.CanonicalName, w.Category, w.FallbackWeight)
	if err != nil {
		return fmt.Errorf("upsert warehouse: %w", err)
	}
	return nil
}

// UpsertAlias inserta o reapunta un alias crudo a su bodega canónica.
func (r *WarehouseCatalogRepo) UpsertAlias(ctx context.Context, a entity.WarehouseAlias) error {
	query := `
		INSERT INTO warehouse_aliases (alias, canonical_name)
		VALUES ($1, $2)
		ON CONFLICT (alias) DO UPDATE SET canonical_name = EXCLUDED.canonical_name`
	_, err := r.pool.Exec(ctx, query, a.Alias, a.CanonicalName)
	if err != nil {
		return fmt.Errorf("upsert alias: %w", err)
	}
	return nil
}

// DeleteAlias elimina un alias por su forma cruda.
func (r *WarehouseCatalogRepo) DeleteAlias(ctx context.Context, alias string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM warehouse_aliases WHERE alias = $1`, alias)
	if err != nil {
		return fmt.Errorf("delete alias: %w", err)
	}
	return nil
}
