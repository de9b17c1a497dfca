package entity

// StockSource identifica el feed de origen de un registro de stock.
type StockSource string

const (
	// SourcePlatform feed de stock en bodegas del marketplace (FBO).
	SourcePlatform StockSource = "platform"
	// SourceSeller feed de stock en bodegas del vendedor (FBS), enlazado por código de barras.
	SourceSeller StockSource = "seller"
)

// RawStockRecord registro crudo de stock tal como llega de un feed.
// Efímero: se produce de nuevo en cada ciclo de sincronización.
type RawStockRecord struct {
	Source           StockSource
	ProductKey       string // id externo del producto en el marketplace
	SupplierArticle  string // artículo del proveedor (variantes comparten prefijo base)
	Barcode          string
	WarehouseNameRaw string
	Quantity         int
}
