package entity

import "github.com/shopspring/decimal"

// WarehouseCategory clasifica una bodega canónica según su rol en la conciliación.
type WarehouseCategory string

const (
	// CategoryPlatform bodega física del operador del marketplace (FBO).
	CategoryPlatform WarehouseCategory = "platform"
	// CategorySeller bodega operada por el vendedor (FBS).
	CategorySeller WarehouseCategory = "seller"
	// CategoryTransit pseudo-bodega de mercancía en tránsito o devolución; se excluye de los totales.
	CategoryTransit WarehouseCategory = "transit"
	// CategoryUnknown nombre no reconocido; se conserva para no sub-reportar stock.
	CategoryUnknown WarehouseCategory = "unknown"
)

// Identificadores canónicos de las dos pseudo-bodegas de tránsito.
// Se reportan como columnas fijas de la hoja, nunca dentro del breakdown por bodega.
const (
	TransitToCustomer  = "En camino al cliente"
	TransitToWarehouse = "En camino al almacén"
)

// CanonicalWarehouse entrada del catálogo de bodegas: nombre canónico, categoría
// y peso de reparto para pedidos sin bodega atribuible.
type CanonicalWarehouse struct {
	CanonicalName  string
	Category       WarehouseCategory
	FallbackWeight decimal.Decimal
}

// WarehouseAlias variante cruda conocida de un nombre de bodega (tal como llega en los feeds).
type WarehouseAlias struct {
	Alias         string
	CanonicalName string
}
