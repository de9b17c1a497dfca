package projection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Conciliador-api/internal/application/ports"
	"github.com/jhoicas/Conciliador-api/internal/domain"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

// Engine motor de proyección tabular: publica el conjunto conciliado en el
// almacén externo respetando el techo de peticiones por minuto.
//
// Toda la cabecera va en una escritura y todo el bloque de datos en otra, en
// lugar de una petición por producto. Si el conjunto de bodegas (y por tanto el
// número de columnas) cambió respecto de la corrida anterior, la hoja se
// regenera completa: insertar columnas a mitad de layout desincronizaría
// fórmulas y formatos existentes.
type Engine struct {
	store        ports.GridStore
	lookbackDays int
	attempts     int
	backoff      time.Duration
	log          *logger.Logger
}

// NewEngine construye el motor de proyección.
func NewEngine(store ports.GridStore, lookbackDays, attempts int, backoff time.Duration, log *logger.Logger) *Engine {
	if attempts < 1 {
		attempts = 1
	}
	return &Engine{
		store:        store,
		lookbackDays: lookbackDays,
		attempts:     attempts,
		backoff:      backoff,
		log:          log.Component("projection"),
	}
}

// Project escribe el conjunto completo de productos conciliados en la hoja.
// Idempotente: proyectar dos veces la misma entrada deja la hoja idéntica.
func (e *Engine) Project(ctx context.Context, inventories []entity.ProductInventory) error {
	layout := NewLayout(inventories, e.lookbackDays)
	row1, row2 := layout.HeaderRows()

	var current [][]string
	if err := e.withRetry(ctx, "leer hoja", func() error {
		var err error
		current, err = e.store.ReadAll(ctx)
		return err
	}); err != nil {
		return err
	}

	if !headersMatch(current, row1, row2) {
		return e.rewriteAll(ctx, layout, row1, row2, inventories)
	}
	return e.upsert(ctx, layout, current, inventories)
}

// rewriteAll regenera la hoja desde cero: tamaño exacto, cabecera de dos filas
// con sus fusiones y el bloque de datos completo.
func (e *Engine) rewriteAll(ctx context.Context, layout *Layout, row1, row2 []string, inventories []entity.ProductInventory) error {
	rows := headerRowCount + len(inventories)
	cols := layout.NumColumns()
	e.log.Info().Int("rows", rows).Int("cols", cols).Msg("layout cambiado; regenerando hoja completa")

	if err := e.withRetry(ctx, "limpiar hoja", func() error {
		return e.store.ClearAll(ctx)
	}); err != nil {
		return err
	}
	if err := e.withRetry(ctx, "redimensionar hoja", func() error {
		return e.store.Resize(ctx, rows, cols)
	}); err != nil {
		return err
	}
	if err := e.withRetry(ctx, "escribir cabecera", func() error {
		return e.store.WriteRange(ctx, 1, 1, [][]string{row1, row2})
	}); err != nil {
		return err
	}
	if err := e.withRetry(ctx, "fusionar cabecera", func() error {
		return e.store.MergeCells(ctx, layout.Merges())
	}); err != nil {
		return err
	}
	if len(inventories) == 0 {
		return nil
	}
	block := make([][]string, 0, len(inventories))
	for _, inv := range inventories {
		block = append(block, layout.DataRow(inv))
	}
	return e.withRetry(ctx, "escribir datos", func() error {
		return e.store.WriteRange(ctx, headerRowCount+1, 1, block)
	})
}

// upsert reescribe en su sitio las filas de productos ya presentes (clave estable
// en la columna de ID) y anexa los nuevos al final, en un solo bloque de escritura.
// Filas de productos ausentes en esta corrida se conservan tal cual.
func (e *Engine) upsert(ctx context.Context, layout *Layout, current [][]string, inventories []entity.ProductInventory) error {
	cols := layout.NumColumns()

	// Bloque existente (filas de datos actuales), normalizado al ancho del layout
	block := make([][]string, 0, len(current))
	rowByKey := make(map[string]int)
	for i := headerRowCount; i < len(current); i++ {
		row := padRow(current[i], cols)
		if key := row[colProductKey-1]; key != "" {
			rowByKey[key] = len(block)
		}
		block = append(block, row)
	}

	appended := 0
	for _, inv := range inventories {
		row := layout.DataRow(inv)
		if idx, ok := rowByKey[inv.ProductKey]; ok {
			block[idx] = row
		} else {
			block = append(block, row)
			appended++
		}
	}

	needRows := headerRowCount + len(block)
	if err := e.ensureCapacity(ctx, needRows, cols); err != nil {
		return err
	}

	e.log.Debug().Int("rows", len(block)).Int("appended", appended).Msg("upsert de bloque de datos")
	if len(block) == 0 {
		return nil
	}
	return e.withRetry(ctx, "escribir datos", func() error {
		return e.store.WriteRange(ctx, headerRowCount+1, 1, block)
	})
}

// ensureCapacity consulta dimensiones y redimensiona antes de escribir si hace falta.
func (e *Engine) ensureCapacity(ctx context.Context, needRows, needCols int) error {
	var rows, cols int
	if err := e.withRetry(ctx, "consultar dimensiones", func() error {
		var err error
		rows, cols, err = e.store.Dimensions(ctx)
		return err
	}); err != nil {
		return err
	}
	if rows >= needRows && cols >= needCols {
		return nil
	}
	if rows < needRows {
		rows = needRows
	}
	if cols < needCols {
		cols = needCols
	}
	return e.withRetry(ctx, "redimensionar hoja", func() error {
		return e.store.Resize(ctx, rows, cols)
	})
}

// withRetry envuelve una llamada al almacén con reintentos acotados y espera fija.
// Solo se reintenta el agotamiento de cuota; cualquier otro error sale de inmediato.
func (e *Engine) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= e.attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrQuotaExceeded) {
			return fmt.Errorf("%s: %w", op, err)
		}
		if attempt == e.attempts {
			break
		}
		e.log.Warn().
			Str("op", op).
			Int("attempt", attempt).
			Dur("backoff", e.backoff).
			Msg("cuota del almacén agotada; reintentando")
		select {
		case <-time.After(e.backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%s: reintentos agotados: %w", op, err)
}

// headersMatch compara la cabecera actual con la calculada para esta corrida.
// Cualquier diferencia (incluido el ancho) dispara la regeneración completa.
func headersMatch(current [][]string, row1, row2 []string) bool {
	if len(current) < headerRowCount {
		return false
	}
	return rowEquals(current[0], row1) && rowEquals(current[1], row2)
}

// rowEquals compara dos filas tolerando celdas vacías finales.
func rowEquals(a, b []string) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var av, bv string
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return false
		}
	}
	return true
}

func padRow(row []string, cols int) []string {
	out := make([]string, cols)
	copy(out, row)
	return out
}
