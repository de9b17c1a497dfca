package sync

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/internal/domain/warehouse"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

// OrderLedger libro de pedidos de una corrida: cancela, deduplica y agrupa por producto.
//
// La deduplicación por UniqueOrderID es global (no por producto): el feed puede
// reportar el mismo pedido bajo varios snapshots de estado, y un id debe contar
// hacia una sola bodega en toda la conciliación.
type OrderLedger struct {
	byProduct  map[string][]entity.RawOrderRecord
	normalizer *warehouse.Normalizer
	log        *logger.Logger
	warnings   int
}

// NewOrderLedger construye el libro: descarta cancelados, deduplica por id
// (gana la primera aparición) y agrupa los sobrevivientes por producto.
func NewOrderLedger(raw []entity.RawOrderRecord, n *warehouse.Normalizer, log *logger.Logger) *OrderLedger {
	l := &OrderLedger{
		byProduct:  make(map[string][]entity.RawOrderRecord),
		normalizer: n,
		log:        log.Component("ledger"),
	}

	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		if r.IsCancelled {
			continue
		}
		if r.UniqueOrderID != "" {
			if _, dup := seen[r.UniqueOrderID]; dup {
				continue
			}
			seen[r.UniqueOrderID] = struct{}{}
		}
		l.byProduct[r.ProductKey] = append(l.byProduct[r.ProductKey], r)
	}
	return l
}

// Warnings advertencias acumuladas (pedidos descartados por falta de bodegas).
func (l *OrderLedger) Warnings() int { return l.warnings }

// Attribute atribuye los pedidos de un producto a sus bodegas canónicas con stock.
// Pedidos con bodega ausente o sin match van a un pool no atribuido que se reparte
// proporcionalmente al stock; la suma repartida iguala exactamente al pool.
// Sin stock en ninguna bodega, el reparto cae a los pesos de reparto del catálogo.
func (l *OrderLedger) Attribute(productKey string, stockByWarehouse map[string]int) map[string]int {
	counts := make(map[string]int, len(stockByWarehouse))
	pool := 0

	for _, r := range l.byProduct[productKey] {
		qty := r.Quantity
		if qty <= 0 {
			qty = 1
		}
		if strings.TrimSpace(r.WarehouseNameRaw) == "" {
			pool += qty
			continue
		}
		canonical := l.normalizer.Normalize(r.WarehouseNameRaw)
		if _, ok := stockByWarehouse[canonical]; ok {
			counts[canonical] += qty
		} else {
			pool += qty
		}
	}

	if pool == 0 {
		return counts
	}

	names := sortedNames(stockByWarehouse)
	if len(names) == 0 {
		// Producto sin bodegas con stock: no hay dónde repartir.
		l.warnings++
		l.log.Warn().
			Str("product_key", productKey).
			Int("dropped_orders", pool).
			Msg("pedidos sin bodegas de stock donde repartir")
		return counts
	}

	stockTotal := 0
	for _, n := range names {
		stockTotal += stockByWarehouse[n]
	}

	var shares map[string]int
	if stockTotal > 0 {
		shares = distribute(pool, names, stockByWarehouse)
	} else {
		shares = l.catalogShares(pool, names)
	}
	for name, share := range shares {
		counts[name] += share
	}
	return counts
}

// catalogShares reparte el pool según el peso de reparto que el catálogo asigna a
// cada bodega, para productos donde ninguna bodega trae stock que sirva de peso.
// El reparto es por mayor residuo (la suma iguala exactamente al pool); a pesos
// iguales equivale al reparto parejo con el residuo en las primeras bodegas del
// orden. Con todos los pesos en cero, el peso es uniforme.
func (l *OrderLedger) catalogShares(pool int, names []string) map[string]int {
	out := make(map[string]int, len(names))
	if pool <= 0 || len(names) == 0 {
		return out
	}

	weights := make([]decimal.Decimal, len(names))
	total := decimal.Zero
	for i, n := range names {
		weights[i] = l.normalizer.FallbackWeight(n)
		total = total.Add(weights[i])
	}
	if !total.IsPositive() {
		one := decimal.NewFromInt(1)
		for i := range weights {
			weights[i] = one
		}
		total = decimal.NewFromInt(int64(len(names)))
	}

	poolD := decimal.NewFromInt(int64(pool))
	fracs := make([]decimal.Decimal, len(names))
	assigned := 0
	for i, n := range names {
		exact := poolD.Mul(weights[i]).Div(total)
		share := int(exact.IntPart())
		out[n] = share
		fracs[i] = exact.Sub(exact.Truncate(0))
		assigned += share
	}

	// Residuo a las mayores partes fraccionarias; a empate, a las primeras bodegas.
	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fracs[order[a]].GreaterThan(fracs[order[b]])
	})
	for i := 0; i < pool-assigned && i < len(order); i++ {
		out[names[order[i]]]++
	}
	return out
}

// distribute reparte pool entre las bodegas en proporción a su peso de stock,
// con truncamiento entero y el residuo asignado a la última bodega del orden,
// de modo que la suma repartida iguala exactamente a pool.
func distribute(pool int, names []string, weights map[string]int) map[string]int {
	out := make(map[string]int, len(names))
	if pool <= 0 || len(names) == 0 {
		return out
	}

	total := 0
	for _, n := range names {
		total += weights[n]
	}
	if total <= 0 {
		return out
	}

	assigned := 0
	for i, n := range names {
		if i == len(names)-1 {
			out[n] = pool - assigned
			break
		}
		share := pool * weights[n] / total
		out[n] = share
		assigned += share
	}
	return out
}

func sortedNames(m map[string]int) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
