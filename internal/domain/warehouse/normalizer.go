package warehouse

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

// UnknownWarehouse canónico de reserva cuando el feed trae el nombre vacío.
const UnknownWarehouse = "desconocido"

// Palabras clave para clasificar nombres que no están en el catálogo.
// Se evalúan sobre el nombre ya plegado (minúsculas, espacios colapsados).
var (
	transitCustomerKeywords  = []string{"transit to customer", "camino al cliente", "in transit to client"}
	transitWarehouseKeywords = []string{"transit to warehouse", "return to warehouse", "camino al almacén", "devolución"}
	sellerKeywords           = []string{"marketplace", "seller warehouse", "fbs", "bodega del vendedor"}
)

// Table catálogo inmutable de bodegas canónicas y sus alias crudos.
// Se construye una vez por ciclo de sincronización; varios normalizadores
// pueden compartirla sin estado mutable (catálogos por tenant, tests en paralelo).
type Table struct {
	byName  map[string]entity.CanonicalWarehouse // nombre canónico plegado → entrada
	aliases map[string]string                    // alias plegado → nombre canónico
	ordered []entity.CanonicalWarehouse          // para el barrido por contención, orden determinista
}

// NewTable construye el catálogo. Los nombres canónicos actúan también como alias de sí mismos.
func NewTable(warehouses []entity.CanonicalWarehouse, aliases []entity.WarehouseAlias) *Table {
	t := &Table{
		byName:  make(map[string]entity.CanonicalWarehouse, len(warehouses)),
		aliases: make(map[string]string, len(warehouses)+len(aliases)),
		ordered: make([]entity.CanonicalWarehouse, 0, len(warehouses)),
	}
	for _, w := range warehouses {
		key := Fold(w.CanonicalName)
		if _, dup := t.byName[key]; dup {
			continue
		}
		t.byName[key] = w
		t.aliases[key] = w.CanonicalName
		t.ordered = append(t.ordered, w)
	}
	for _, a := range aliases {
		key := Fold(a.Alias)
		if _, dup := t.aliases[key]; dup {
			continue
		}
		t.aliases[key] = a.CanonicalName
	}
	return t
}

// Lookup devuelve la entrada canónica de un nombre ya normalizado.
func (t *Table) Lookup(canonicalName string) (entity.CanonicalWarehouse, bool) {
	w, ok := t.byName[Fold(canonicalName)]
	return w, ok
}

// Normalizer resuelve nombres crudos de bodega a identidades canónicas y las clasifica.
// La normalización nunca falla: un nombre sin match degrada a su propia identidad
// con categoría desconocida, porque excluirlo sub-reportaría stock en silencio.
type Normalizer struct {
	table *Table
	log   *logger.Logger
}

// NewNormalizer construye el normalizador sobre un catálogo inmutable.
func NewNormalizer(table *Table, log *logger.Logger) *Normalizer {
	return &Normalizer{table: table, log: log.Component("normalizer")}
}

// Normalize resuelve un nombre crudo a su identidad canónica.
// Orden: plegado + limpieza → alias exacto → contención bidireccional → passthrough.
func (n *Normalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UnknownWarehouse
	}

	key := Fold(trimmed)

	// 1. Alias exacto (incluye los propios nombres canónicos)
	if canonical, ok := n.table.aliases[key]; ok {
		return canonical
	}

	// 2. Contención en ambas direcciones contra los nombres canónicos conocidos.
	// Cubre variantes tipo "Tula 2" o nombres canónicos recortados en el feed.
	for _, w := range n.table.ordered {
		ck := Fold(w.CanonicalName)
		if strings.Contains(key, ck) || strings.Contains(ck, key) {
			return w.CanonicalName
		}
	}

	// 3. Sin match: el nombre crudo pasa como su propia identidad canónica,
	// registrado para extender el catálogo más adelante.
	n.log.Warn().Str("raw_name", raw).Msg("bodega sin match en el catálogo; pasa como desconocida")
	return trimmed
}

// Classify devuelve la categoría de un nombre canónico.
// Nombres fuera del catálogo se clasifican por palabras clave; si ninguna aplica, unknown.
func (n *Normalizer) Classify(canonicalName string) entity.WarehouseCategory {
	if canonicalName == UnknownWarehouse {
		return entity.CategoryUnknown
	}
	if w, ok := n.table.Lookup(canonicalName); ok {
		return w.Category
	}
	key := Fold(canonicalName)
	if containsAny(key, transitCustomerKeywords) || containsAny(key, transitWarehouseKeywords) {
		return entity.CategoryTransit
	}
	if containsAny(key, sellerKeywords) {
		return entity.CategorySeller
	}
	return entity.CategoryUnknown
}

// FallbackWeight devuelve el peso de reparto del catálogo para una bodega canónica.
// Bodegas fuera del catálogo pesan cero.
func (n *Normalizer) FallbackWeight(canonicalName string) decimal.Decimal {
	if w, ok := n.table.Lookup(canonicalName); ok {
		return w.FallbackWeight
	}
	return decimal.Zero
}

// TransitTarget distingue las dos pseudo-bodegas de tránsito para las columnas fijas
// de la hoja. Devuelve TransitToCustomer o TransitToWarehouse; solo tiene sentido
// para nombres clasificados como CategoryTransit.
func (n *Normalizer) TransitTarget(canonicalName string) string {
	key := Fold(canonicalName)
	if strings.Contains(key, "cliente") || strings.Contains(key, "customer") || strings.Contains(key, "client") {
		return entity.TransitToCustomer
	}
	return entity.TransitToWarehouse
}

// Fold pliega un nombre para comparación: NFC, case folding Unicode, guiones a espacio,
// espacios colapsados, sufijo regional "Ciudad (Región)" recortado y marcador "mp" expandido.
func Fold(s string) string {
	s = norm.NFC.String(s)
	s = cases.Fold().String(s)
	s = strings.ReplaceAll(s, "-", " ")

	// Recorte del sufijo regional: "tula (tula region)" → "tula"
	if i := strings.Index(s, "("); i > 0 {
		s = s[:i]
	}

	fields := strings.Fields(s)
	for i, f := range fields {
		// Abreviatura común del feed del vendedor
		if f == "mp" {
			fields[i] = "marketplace"
		}
	}
	return strings.Join(fields, " ")
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
