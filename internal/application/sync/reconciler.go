package sync

import (
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Conciliador-api/internal/domain/inventory"
	"github.com/jhoicas/Conciliador-api/internal/domain/warehouse"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

// Reconciler fusiona stock agregado y pedidos atribuidos en un registro conciliado
// por producto. El conjunto de bodegas del producto es la unión de las bodegas
// presentes en el stock; las pseudo-bodegas de tránsito ya fueron excluidas aguas arriba.
type Reconciler struct {
	normalizer   *warehouse.Normalizer
	lookbackDays int
	log          *logger.Logger
	warnings     int
}

// NewReconciler construye el conciliador.
func NewReconciler(n *warehouse.Normalizer, lookbackDays int, log *logger.Logger) *Reconciler {
	return &Reconciler{
		normalizer:   n,
		lookbackDays: lookbackDays,
		log:          log.Component("reconciler"),
	}
}

// Warnings advertencias de calidad de datos acumuladas.
func (r *Reconciler) Warnings() int { return r.warnings }

// Reconcile construye el ProductInventory de un producto a partir de su stock
// agregado y sus pedidos atribuidos por bodega.
//
// Tras construir el registro se validan las invariantes de suma; una violación
// se registra como advertencia (anomalías del feed son esperables) pero el
// registro se emite igual: bloquear toda la corrida por un producto es peor
// que publicar una fila levemente desviada.
func (r *Reconciler) Reconcile(agg *AggregatedStock, ordersByWarehouse map[string]int) entity.ProductInventory {
	names := sortedNames(agg.StockByWarehouse)

	inv := entity.ProductInventory{
		ProductKey:           agg.ProductKey,
		SupplierArticle:      agg.SupplierArticle,
		InTransitToCustomer:  agg.InTransitToCustomer,
		InTransitToWarehouse: agg.InTransitToWarehouse,
		Breakdown:            make([]entity.WarehouseBreakdown, 0, len(names)),
	}

	for _, name := range names {
		b := entity.WarehouseBreakdown{
			CanonicalName:     name,
			StockQuantity:     agg.StockByWarehouse[name],
			OrderQuantity:     ordersByWarehouse[name],
			IsSellerFulfilled: r.normalizer.Classify(name) == entity.CategorySeller,
		}
		inv.TotalStock += b.StockQuantity
		inv.TotalOrders += b.OrderQuantity
		inv.Breakdown = append(inv.Breakdown, b)
	}

	inv.Turnover = domaininv.Turnover(inv.TotalStock, inv.TotalOrders, r.lookbackDays)

	r.validate(&inv, ordersByWarehouse)
	return inv
}

// validate comprueba las invariantes de suma y que ningún pedido atribuido quedó
// fuera del desglose (bodega presente solo en pedidos, nunca en stock).
func (r *Reconciler) validate(inv *entity.ProductInventory, ordersByWarehouse map[string]int) {
	stockSum, orderSum := 0, 0
	for _, b := range inv.Breakdown {
		stockSum += b.StockQuantity
		orderSum += b.OrderQuantity
	}
	if stockSum != inv.TotalStock {
		r.warnings++
		r.log.Warn().
			Str("product_key", inv.ProductKey).
			Int("breakdown_sum", stockSum).
			Int("total_stock", inv.TotalStock).
			Msg("invariante de stock violada")
	}

	attributed := 0
	for _, qty := range ordersByWarehouse {
		attributed += qty
	}
	if orderSum != inv.TotalOrders || attributed != inv.TotalOrders {
		r.warnings++
		r.log.Warn().
			Str("product_key", inv.ProductKey).
			Int("breakdown_sum", orderSum).
			Int("attributed", attributed).
			Int("total_orders", inv.TotalOrders).
			Msg("invariante de pedidos violada: pedidos atribuidos fuera del desglose")
	}
}
