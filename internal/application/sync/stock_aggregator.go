package sync

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Conciliador-api/internal/application/ports"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/internal/domain/warehouse"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

// AggregatedStock stock agregado de un producto desde ambos feeds, ya normalizado
// por bodega canónica. Las cantidades en tránsito se capturan aparte y nunca
// entran al mapa de stock.
type AggregatedStock struct {
	ProductKey           string
	SupplierArticle      string
	StockByWarehouse     map[string]int
	InTransitToCustomer  int
	InTransitToWarehouse int
	Barcodes             []string
}

// StockAggregator agrega los registros crudos de los dos feeds de stock, enlazando
// el stock del vendedor con el producto dueño vía código de barras.
type StockAggregator struct {
	sellerFeed ports.SellerStockFeed
	normalizer *warehouse.Normalizer
	log        *logger.Logger
	warnings   int
}

// NewStockAggregator construye el agregador.
func NewStockAggregator(sellerFeed ports.SellerStockFeed, n *warehouse.Normalizer, log *logger.Logger) *StockAggregator {
	return &StockAggregator{
		sellerFeed: sellerFeed,
		normalizer: n,
		log:        log.Component("aggregator"),
	}
}

// Warnings advertencias acumuladas (códigos de barras sin enlace a producto).
func (a *StockAggregator) Warnings() int { return a.warnings }

// Aggregate agrupa los registros del feed de plataforma por producto, recolecta sus
// códigos de barras y consulta el feed del vendedor restringido a ese conjunto.
//
// articleFilter opcional: cuando no está vacío, solo se consideran registros cuyo
// artículo de proveedor comparte el prefijo, plegando las variantes bajo una sola clave.
func (a *StockAggregator) Aggregate(ctx context.Context, platform []entity.RawStockRecord, articleFilter string) (map[string]*AggregatedStock, error) {
	byProduct := make(map[string]*AggregatedStock)
	barcodeOwner := make(map[string]string) // código de barras → clave de producto
	var barcodes []string

	for _, r := range platform {
		key := r.ProductKey
		if articleFilter != "" {
			if !strings.HasPrefix(r.SupplierArticle, articleFilter) {
				continue
			}
			// Variantes del mismo artículo base se pliegan bajo una sola clave
			key = articleFilter
		}

		agg, ok := byProduct[key]
		if !ok {
			agg = &AggregatedStock{
				ProductKey:       key,
				SupplierArticle:  r.SupplierArticle,
				StockByWarehouse: make(map[string]int),
			}
			byProduct[key] = agg
		}

		if r.Barcode != "" {
			if _, known := barcodeOwner[r.Barcode]; !known {
				barcodeOwner[r.Barcode] = key
				barcodes = append(barcodes, r.Barcode)
				agg.Barcodes = append(agg.Barcodes, r.Barcode)
			}
		}

		a.addQuantity(agg, r.WarehouseNameRaw, r.Quantity)
	}

	if len(barcodes) == 0 {
		return byProduct, nil
	}
	sort.Strings(barcodes)

	sellerRecords, err := a.sellerFeed.FetchStocksByBarcodes(ctx, barcodes)
	if err != nil {
		return nil, fmt.Errorf("consultar stock del vendedor: %w", err)
	}

	for _, r := range sellerRecords {
		key, ok := barcodeOwner[r.Barcode]
		if !ok {
			// Sin enlace de código de barras no hay producto al que atribuir el stock
			a.warnings++
			a.log.Warn().
				Str("barcode", r.Barcode).
				Str("warehouse", r.WarehouseNameRaw).
				Msg("stock del vendedor con código de barras sin enlace; descartado")
			continue
		}
		a.addQuantity(byProduct[key], r.WarehouseNameRaw, r.Quantity)
	}

	return byProduct, nil
}

// addQuantity normaliza la bodega y suma la cantidad donde corresponde:
// pseudo-bodegas de tránsito a sus contadores, el resto al mapa de stock.
func (a *StockAggregator) addQuantity(agg *AggregatedStock, rawName string, qty int) {
	if qty < 0 {
		qty = 0
	}
	canonical := a.normalizer.Normalize(rawName)
	if a.normalizer.Classify(canonical) == entity.CategoryTransit {
		if a.normalizer.TransitTarget(canonical) == entity.TransitToCustomer {
			agg.InTransitToCustomer += qty
		} else {
			agg.InTransitToWarehouse += qty
		}
		return
	}
	agg.StockByWarehouse[canonical] += qty
}
