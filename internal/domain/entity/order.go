package entity

// RawOrderRecord registro crudo de pedido tal como llega del feed.
// El mismo pedido puede aparecer varias veces bajo distintos snapshots de estado;
// UniqueOrderID es la defensa contra el doble conteo. Efímero por ciclo.
type RawOrderRecord struct {
	ProductKey       string
	SupplierArticle  string
	WarehouseNameRaw string
	UniqueOrderID    string
	IsCancelled      bool
	Quantity         int // 0 se interpreta como 1 pedido
}
