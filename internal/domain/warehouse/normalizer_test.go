package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/internal/domain/warehouse"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

func newNormalizer(t *testing.T) *warehouse.Normalizer {
	t.Helper()
	return warehouse.NewNormalizer(warehouse.DefaultTable(), logger.Nop())
}

// TestNormalize_VariantesVendedor verifica que todas las variantes conocidas del
// feed del vendedor resuelven a la misma identidad canónica FBS.
func TestNormalize_VariantesVendedor(t *testing.T) {
	n := newNormalizer(t)

	variantes := []string{"Marketplace", "marketplace", "MARKETPLACE", "Seller Warehouse", "FBS", "MP"}
	for _, v := range variantes {
		canonical := n.Normalize(v)
		assert.Equal(t, "Marketplace", canonical, "la variante %q debe resolver al canónico del vendedor", v)
		assert.Equal(t, entity.CategorySeller, n.Classify(canonical))
	}
}

// TestNormalize_SufijoRegional verifica el recorte "Ciudad (Región)" → "Ciudad".
func TestNormalize_SufijoRegional(t *testing.T) {
	n := newNormalizer(t)

	assert.Equal(t, "Tula", n.Normalize("Tula (Tula Region)"))
	assert.Equal(t, "Tula", n.Normalize("  tula  "))
	assert.Equal(t, entity.CategoryPlatform, n.Classify("Tula"))
}

// TestNormalize_Contencion verifica el match por contención en ambas direcciones.
func TestNormalize_Contencion(t *testing.T) {
	n := newNormalizer(t)

	// El nombre crudo contiene al canónico
	assert.Equal(t, "Tula", n.Normalize("Tula 2"))
	// El canónico contiene al nombre crudo
	assert.Equal(t, "Central", n.Normalize("centra"))
}

// TestNormalize_Transito verifica que las pseudo-bodegas de tránsito se clasifican
// y se distinguen entre destino cliente y destino almacén.
func TestNormalize_Transito(t *testing.T) {
	n := newNormalizer(t)

	cliente := n.Normalize("In transit to customer")
	require.Equal(t, entity.TransitToCustomer, cliente)
	assert.Equal(t, entity.CategoryTransit, n.Classify(cliente))
	assert.Equal(t, entity.TransitToCustomer, n.TransitTarget(cliente))

	almacen := n.Normalize("Return to warehouse")
	require.Equal(t, entity.TransitToWarehouse, almacen)
	assert.Equal(t, entity.CategoryTransit, n.Classify(almacen))
	assert.Equal(t, entity.TransitToWarehouse, n.TransitTarget(almacen))
}

// TestNormalize_SinMatch verifica el passthrough: la normalización nunca falla,
// un nombre desconocido pasa como su propia identidad con categoría unknown.
func TestNormalize_SinMatch(t *testing.T) {
	n := newNormalizer(t)

	canonical := n.Normalize("Bodega Fantasma 99")
	assert.Equal(t, "Bodega Fantasma 99", canonical)
	assert.Equal(t, entity.CategoryUnknown, n.Classify(canonical))
}

// TestNormalize_NombreVacio verifica que el vacío degrada al canónico de reserva.
func TestNormalize_NombreVacio(t *testing.T) {
	n := newNormalizer(t)

	canonical := n.Normalize("   ")
	assert.Equal(t, warehouse.UnknownWarehouse, canonical)
	assert.Equal(t, entity.CategoryUnknown, n.Classify(canonical))
}

// TestClassify_PorPalabrasClave un nombre fuera del catálogo con marcador de tránsito
// o de vendedor se clasifica por palabras clave.
func TestClassify_PorPalabrasClave(t *testing.T) {
	n := newNormalizer(t)

	assert.Equal(t, entity.CategoryTransit, n.Classify("mercancía en devolución"))
	assert.Equal(t, entity.CategorySeller, n.Classify("almacén fbs secundario"))
}

// TestTable_InmutableCompartida dos normalizadores sobre la misma tabla no comparten
// estado mutable: normalizar en uno no altera los resultados del otro.
func TestTable_InmutableCompartida(t *testing.T) {
	table := warehouse.DefaultTable()
	n1 := warehouse.NewNormalizer(table, logger.Nop())
	n2 := warehouse.NewNormalizer(table, logger.Nop())

	_ = n1.Normalize("Bodega Inexistente")
	assert.Equal(t, "Tula", n2.Normalize("Tula"))
	assert.Equal(t, "Marketplace", n2.Normalize("fbs"))
}
