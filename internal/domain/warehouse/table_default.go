package warehouse

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
)

// DefaultTable catálogo mínimo embebido: se usa cuando la base de datos aún no tiene
// catálogo propio (primer arranque, tests). El catálogo real vive en PostgreSQL y se
// extiende a partir de los nombres desconocidos que el normalizador va registrando.
func DefaultTable() *Table {
	return NewTable(DefaultCatalog())
}

// DefaultCatalog bodegas y alias del catálogo embebido, en la forma que esperan
// el repositorio y el comando de siembra.
func DefaultCatalog() ([]entity.CanonicalWarehouse, []entity.WarehouseAlias) {
	one := decimal.NewFromInt(1)

	warehouses := []entity.CanonicalWarehouse{
		// Pseudo-bodegas de tránsito: excluidas de todos los totales
		{CanonicalName: entity.TransitToCustomer, Category: entity.CategoryTransit},
		{CanonicalName: entity.TransitToWarehouse, Category: entity.CategoryTransit},

		// Bodega del vendedor (FBS)
		{CanonicalName: "Marketplace", Category: entity.CategorySeller, FallbackWeight: one},

		// Bodegas del operador (FBO)
		{CanonicalName: "Tula", Category: entity.CategoryPlatform, FallbackWeight: one},
		{CanonicalName: "Central", Category: entity.CategoryPlatform, FallbackWeight: one},
		{CanonicalName: "Norte", Category: entity.CategoryPlatform, FallbackWeight: one},

		// Reserva para registros con nombre vacío
		{CanonicalName: UnknownWarehouse, Category: entity.CategoryUnknown},
	}

	aliases := []entity.WarehouseAlias{
		{Alias: "In transit to customer", CanonicalName: entity.TransitToCustomer},
		{Alias: "En camino al cliente", CanonicalName: entity.TransitToCustomer},
		{Alias: "In transit to warehouse", CanonicalName: entity.TransitToWarehouse},
		{Alias: "Return to warehouse", CanonicalName: entity.TransitToWarehouse},
		{Alias: "En camino al almacén", CanonicalName: entity.TransitToWarehouse},

		{Alias: "Seller Warehouse", CanonicalName: "Marketplace"},
		{Alias: "Bodega del vendedor", CanonicalName: "Marketplace"},
		{Alias: "FBS", CanonicalName: "Marketplace"},
		{Alias: "MP", CanonicalName: "Marketplace"},
	}

	return warehouses, aliases
}
