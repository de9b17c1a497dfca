// seed_warehouses siembra el catálogo embebido de bodegas canónicas y alias en
// PostgreSQL. Idempotente: las entradas existentes se actualizan en su sitio.
//
// Uso: go run ./cmd/seed_warehouses
// Toma la conexión de las mismas variables de entorno que la API (DATABASE_URL, DB_HOST, ...).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Conciliador-api/internal/domain/warehouse"
	"github.com/jhoicas/Conciliador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Conciliador-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewWarehouseCatalogRepository(pool)
	warehouses, aliases := warehouse.DefaultCatalog()

	for _, w := range warehouses {
		if err := repo.UpsertWarehouse(ctx, w); err != nil {
			fmt.Fprintf(os.Stderr, "Sembrar bodega %q: %v\n", w.CanonicalName, err)
			os.Exit(1)
		}
	}
	for _, a := range aliases {
		if err := repo.UpsertAlias(ctx, a); err != nil {
			fmt.Fprintf(os.Stderr, "Sembrar alias %q: %v\n", a.Alias, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Catálogo sembrado: %d bodegas, %d alias\n", len(warehouses), len(aliases))
}
