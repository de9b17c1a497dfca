package ports

import (
	"context"

	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
)

// Puertos de salida hacia los feeds del marketplace. Las implementaciones concretas
// usan HTTP con reintentos acotados; para tests se inyectan stubs.

// PlatformStockFeed feed A: stock en bodegas del operador (FBO), una línea por bodega.
type PlatformStockFeed interface {
	FetchStocks(ctx context.Context) ([]entity.RawStockRecord, error)
}

// SellerStockFeed feed B: stock en bodegas del vendedor (FBS), consultado por
// conjunto de códigos de barras.
type SellerStockFeed interface {
	FetchStocksByBarcodes(ctx context.Context, barcodes []string) ([]entity.RawStockRecord, error)
}

// OrdersFeed feed C: pedidos de la ventana de análisis, un registro por pedido.
type OrdersFeed interface {
	FetchOrders(ctx context.Context, lookbackDays int) ([]entity.RawOrderRecord, error)
}
