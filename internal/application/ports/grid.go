package ports

import "context"

// CellRange rango de celdas de una sola fila (1-based, extremos inclusive).
type CellRange struct {
	Row      int
	StartCol int
	EndCol   int
}

// GridStore define el puerto hacia el almacén tabular externo (hoja de cálculo).
// Direccionamiento 1-based de filas y columnas; la traducción a la notación nativa
// del almacén (letras de columna) es asunto del adaptador, no de este puerto.
//
// El motor de proyección asume acceso exclusivo de escritura durante un project();
// la serialización entre corridas concurrentes la garantiza el orquestador.
type GridStore interface {
	// Dimensions devuelve filas y columnas actuales de la hoja.
	Dimensions(ctx context.Context) (rows, cols int, err error)
	// ReadAll devuelve todos los valores; filas ausentes llegan como slices cortos.
	ReadAll(ctx context.Context) ([][]string, error)
	// Resize ajusta el tamaño de la hoja a rows × cols.
	Resize(ctx context.Context, rows, cols int) error
	// WriteRange escribe un bloque rectangular con esquina superior izquierda en (row, col).
	WriteRange(ctx context.Context, row, col int, values [][]string) error
	// MergeCells fusiona rangos de cabecera en una sola petición al almacén.
	MergeCells(ctx context.Context, ranges []CellRange) error
	// ClearAll borra valores y fusiones de toda la hoja.
	ClearAll(ctx context.Context) error
}
