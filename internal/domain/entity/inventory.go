package entity

import "github.com/shopspring/decimal"

// WarehouseBreakdown desglose de un producto en una bodega canónica.
// Nunca contiene pseudo-bodegas de tránsito: se excluyen antes de la conciliación.
type WarehouseBreakdown struct {
	CanonicalName     string
	StockQuantity     int
	OrderQuantity     int
	IsSellerFulfilled bool
}

// ProductInventory registro conciliado de un producto: stock y pedidos de ambos feeds
// fusionados por bodega canónica. Se crea de nuevo en cada ciclo y reemplaza al anterior.
//
// Invariantes (validadas por el conciliador):
//   - sum(Breakdown.StockQuantity) == TotalStock
//   - sum(Breakdown.OrderQuantity) == TotalOrders
type ProductInventory struct {
	ProductKey           string
	SupplierArticle      string
	TotalStock           int
	TotalOrders          int
	Turnover             decimal.Decimal // días de cobertura: stock / (pedidos por día)
	InTransitToCustomer  int
	InTransitToWarehouse int
	Breakdown            []WarehouseBreakdown // orden determinista (bodegas ordenadas)
}
