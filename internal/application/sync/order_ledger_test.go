package sync_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/jhoicas/Conciliador-api/internal/application/sync"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/internal/domain/warehouse"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

func testNormalizer() *warehouse.Normalizer {
	return warehouse.NewNormalizer(warehouse.DefaultTable(), logger.Nop())
}

func order(product, wh, id string, cancelled bool) entity.RawOrderRecord {
	return entity.RawOrderRecord{
		ProductKey:       product,
		WarehouseNameRaw: wh,
		UniqueOrderID:    id,
		IsCancelled:      cancelled,
	}
}

// TestOrderLedger_DeduplicaYCancela el mismo id bajo varios snapshots cuenta una
// sola vez, y los cancelados no cuentan nunca.
func TestOrderLedger_DeduplicaYCancela(t *testing.T) {
	raw := []entity.RawOrderRecord{
		order("P1", "Tula", "ord-1", false),
		order("P1", "Tula", "ord-1", false), // snapshot duplicado
		order("P1", "Tula", "ord-2", false),
		order("P1", "Tula", "ord-3", true), // cancelado
		order("P1", "Tula", "ord-4", true), // cancelado
	}
	ledger := appsync.NewOrderLedger(raw, testNormalizer(), logger.Nop())

	counts := ledger.Attribute("P1", map[string]int{"Tula": 100})
	assert.Equal(t, map[string]int{"Tula": 2}, counts)
}

// TestOrderLedger_CanceladosExcluidos 5 pedidos vivos y 2 cancelados en "Tula" → 5 atribuidos.
func TestOrderLedger_CanceladosExcluidos(t *testing.T) {
	var raw []entity.RawOrderRecord
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		raw = append(raw, order("P1", "Tula", id, false))
	}
	raw = append(raw, order("P1", "Tula", "x", true), order("P1", "Tula", "y", true))

	ledger := appsync.NewOrderLedger(raw, testNormalizer(), logger.Nop())
	counts := ledger.Attribute("P1", map[string]int{"Tula": 100, "Marketplace": 50})

	assert.Equal(t, 5, counts["Tula"])
	assert.Zero(t, counts["Marketplace"])
}

// TestOrderLedger_RepartoProporcional 3 pedidos sin bodega con stock 80/20 se reparten 2 y 1
// proporcionalmente, residuo a la última bodega del orden: la suma se conserva exacta.
func TestOrderLedger_RepartoProporcional(t *testing.T) {
	raw := []entity.RawOrderRecord{
		order("P1", "", "o1", false),
		order("P1", "", "o2", false),
		order("P1", "", "o3", false),
	}
	ledger := appsync.NewOrderLedger(raw, testNormalizer(), logger.Nop())

	counts := ledger.Attribute("P1", map[string]int{"Central": 80, "Tula": 20})

	total := counts["Central"] + counts["Tula"]
	require.Equal(t, 3, total, "ningún pedido se pierde ni se inventa")
	// Orden alfabético: Central (80) primero, Tula (20) absorbe el residuo
	assert.Equal(t, 2, counts["Central"])
	assert.Equal(t, 1, counts["Tula"])
}

// TestOrderLedger_RepartoSinStock sin peso de stock el reparto cae a los pesos
// del catálogo; a pesos iguales es parejo, residuo a las primeras bodegas.
func TestOrderLedger_RepartoSinStock(t *testing.T) {
	raw := []entity.RawOrderRecord{
		order("P1", "", "o1", false),
		order("P1", "", "o2", false),
		order("P1", "", "o3", false),
		order("P1", "", "o4", false),
		order("P1", "", "o5", false),
	}
	ledger := appsync.NewOrderLedger(raw, testNormalizer(), logger.Nop())

	counts := ledger.Attribute("P1", map[string]int{"Central": 0, "Norte": 0, "Tula": 0})
	assert.Equal(t, 2, counts["Central"])
	assert.Equal(t, 2, counts["Norte"])
	assert.Equal(t, 1, counts["Tula"])
}

// TestOrderLedger_RepartoPorPesoDeCatalogo con todo el stock en cero, el peso de
// reparto configurado en el catálogo manda: 3:1 sobre 4 pedidos reparte 3 y 1.
func TestOrderLedger_RepartoPorPesoDeCatalogo(t *testing.T) {
	table := warehouse.NewTable([]entity.CanonicalWarehouse{
		{CanonicalName: "Central", Category: entity.CategoryPlatform, FallbackWeight: decimal.NewFromInt(3)},
		{CanonicalName: "Tula", Category: entity.CategoryPlatform, FallbackWeight: decimal.NewFromInt(1)},
	}, nil)
	n := warehouse.NewNormalizer(table, logger.Nop())

	raw := []entity.RawOrderRecord{
		order("P1", "", "o1", false),
		order("P1", "", "o2", false),
		order("P1", "", "o3", false),
		order("P1", "", "o4", false),
	}
	ledger := appsync.NewOrderLedger(raw, n, logger.Nop())

	counts := ledger.Attribute("P1", map[string]int{"Central": 0, "Tula": 0})
	assert.Equal(t, 3, counts["Central"])
	assert.Equal(t, 1, counts["Tula"])
}

// TestOrderLedger_BodegaSinMatchVaAlPool un pedido cuya bodega no existe en el
// stock del producto se reparte como no atribuido en vez de perderse.
func TestOrderLedger_BodegaSinMatchVaAlPool(t *testing.T) {
	raw := []entity.RawOrderRecord{
		order("P1", "Bodega Inexistente", "o1", false),
		order("P1", "Tula (Tula Region)", "o2", false), // variante regional → match exacto
	}
	ledger := appsync.NewOrderLedger(raw, testNormalizer(), logger.Nop())

	counts := ledger.Attribute("P1", map[string]int{"Tula": 50})
	assert.Equal(t, 2, counts["Tula"], "1 exacto + 1 del pool no atribuido")
}

// TestOrderLedger_CantidadPorDefecto cantidad ausente (0) cuenta como 1 pedido.
func TestOrderLedger_CantidadPorDefecto(t *testing.T) {
	raw := []entity.RawOrderRecord{
		{ProductKey: "P1", WarehouseNameRaw: "Tula", UniqueOrderID: "o1", Quantity: 0},
		{ProductKey: "P1", WarehouseNameRaw: "Tula", UniqueOrderID: "o2", Quantity: 3},
	}
	ledger := appsync.NewOrderLedger(raw, testNormalizer(), logger.Nop())

	counts := ledger.Attribute("P1", map[string]int{"Tula": 10})
	assert.Equal(t, 4, counts["Tula"])
}

// TestOrderLedger_SinBodegasConStock sin bodegas donde repartir, los pedidos se
// descartan con advertencia en lugar de romper la corrida.
func TestOrderLedger_SinBodegasConStock(t *testing.T) {
	raw := []entity.RawOrderRecord{order("P1", "", "o1", false)}
	ledger := appsync.NewOrderLedger(raw, testNormalizer(), logger.Nop())

	counts := ledger.Attribute("P1", map[string]int{})
	assert.Empty(t, counts)
	assert.Equal(t, 1, ledger.Warnings())
}

// TestOrderLedger_IdUnicoGlobal un id duplicado entre productos distintos cuenta
// hacia una sola bodega en toda la conciliación.
func TestOrderLedger_IdUnicoGlobal(t *testing.T) {
	raw := []entity.RawOrderRecord{
		order("P1", "Tula", "shared", false),
		order("P2", "Tula", "shared", false), // mismo id bajo otro producto
	}
	ledger := appsync.NewOrderLedger(raw, testNormalizer(), logger.Nop())

	c1 := ledger.Attribute("P1", map[string]int{"Tula": 10})
	c2 := ledger.Attribute("P2", map[string]int{"Tula": 10})
	assert.Equal(t, 1, c1["Tula"]+c2["Tula"], "el id debe contar una sola vez en total")
}
