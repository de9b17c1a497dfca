package projection

import (
	"sort"
	"strconv"

	"github.com/jhoicas/Conciliador-api/internal/application/ports"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Conciliador-api/internal/domain/inventory"
)

// Columnas base fijas de la hoja (1-based). Tras ellas, un triple
// (stock / pedidos / rotación) por cada bodega canónica de la corrida.
const (
	colArticle    = 1
	colProductKey = 2 // clave estable para el upsert por fila

	baseColumnCount = 7
	headerRowCount  = 2
	triple          = 3
)

var baseSubLabels = [baseColumnCount]string{
	"Artículo",
	"ID producto",
	"Pedidos",
	"Stock total",
	"Rotación (días)",
	entity.TransitToCustomer,
	entity.TransitToWarehouse,
}

var warehouseSubLabels = [triple]string{"Stock", "Pedidos", "Rotación"}

// Layout layout tabular de una corrida: función pura del conjunto de bodegas
// canónicas visto en los productos conciliados. Los índices de columna son
// enteros en todo el motor; la conversión a letras de columna ocurre solo en
// el adaptador del almacén.
type Layout struct {
	Warehouses   []string // orden estable dentro de la corrida (ordenadas)
	lookbackDays int
}

// NewLayout calcula el layout a partir del conjunto de productos conciliados.
func NewLayout(inventories []entity.ProductInventory, lookbackDays int) *Layout {
	seen := make(map[string]struct{})
	var names []string
	for _, inv := range inventories {
		for _, b := range inv.Breakdown {
			if _, ok := seen[b.CanonicalName]; !ok {
				seen[b.CanonicalName] = struct{}{}
				names = append(names, b.CanonicalName)
			}
		}
	}
	sort.Strings(names)
	return &Layout{Warehouses: names, lookbackDays: lookbackDays}
}

// NumColumns columnas totales: base + 3 por bodega.
func (l *Layout) NumColumns() int {
	return baseColumnCount + triple*len(l.Warehouses)
}

// warehouseStartCol columna inicial del triple de la bodega i (0-based).
func (l *Layout) warehouseStartCol(i int) int {
	return baseColumnCount + 1 + triple*i
}

// HeaderRows devuelve las dos filas de cabecera: la fila 1 lleva los títulos de
// sección (que luego se fusionan) y la fila 2 las sub-etiquetas.
func (l *Layout) HeaderRows() (row1, row2 []string) {
	cols := l.NumColumns()
	row1 = make([]string, cols)
	row2 = make([]string, cols)

	row1[0] = "Producto"
	row1[2] = "Totales"
	for i := range baseSubLabels {
		row2[i] = baseSubLabels[i]
	}

	for i, name := range l.Warehouses {
		start := l.warehouseStartCol(i) - 1
		row1[start] = name
		for j, sub := range warehouseSubLabels {
			row2[start+j] = sub
		}
	}
	return row1, row2
}

// Merges rangos de fusión de la fila 1: sección de producto, sección de totales
// y una celda fusionada de tres columnas por bodega.
func (l *Layout) Merges() []ports.CellRange {
	merges := []ports.CellRange{
		{Row: 1, StartCol: colArticle, EndCol: colProductKey},
		{Row: 1, StartCol: colProductKey + 1, EndCol: baseColumnCount},
	}
	for i := range l.Warehouses {
		start := l.warehouseStartCol(i)
		merges = append(merges, ports.CellRange{Row: 1, StartCol: start, EndCol: start + triple - 1})
	}
	return merges
}

// DataRow proyecta un producto conciliado a su fila según este layout.
// Bodegas del layout sin presencia en el producto quedan en cero.
func (l *Layout) DataRow(inv entity.ProductInventory) []string {
	byName := make(map[string]entity.WarehouseBreakdown, len(inv.Breakdown))
	for _, b := range inv.Breakdown {
		byName[b.CanonicalName] = b
	}

	row := make([]string, l.NumColumns())
	row[0] = inv.SupplierArticle
	row[1] = inv.ProductKey
	row[2] = strconv.Itoa(inv.TotalOrders)
	row[3] = strconv.Itoa(inv.TotalStock)
	row[4] = inv.Turnover.StringFixed(2)
	row[5] = strconv.Itoa(inv.InTransitToCustomer)
	row[6] = strconv.Itoa(inv.InTransitToWarehouse)

	for i, name := range l.Warehouses {
		start := l.warehouseStartCol(i) - 1
		b := byName[name] // cero-valor si la bodega no aplica a este producto
		row[start] = strconv.Itoa(b.StockQuantity)
		row[start+1] = strconv.Itoa(b.OrderQuantity)
		row[start+2] = domaininv.Turnover(b.StockQuantity, b.OrderQuantity, l.lookbackDays).StringFixed(2)
	}
	return row
}
