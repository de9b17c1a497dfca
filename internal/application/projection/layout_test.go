package projection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliador-api/internal/application/projection"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
)

// TestLayout_FuncionPuraDelConjuntoDeBodegas el layout depende solo del conjunto
// de bodegas canónicas de la corrida, sin importar en qué producto aparezcan.
func TestLayout_FuncionPuraDelConjuntoDeBodegas(t *testing.T) {
	a := projection.NewLayout([]entity.ProductInventory{
		inv("P1", "A", bd("Tula", 1, 0)),
		inv("P2", "B", bd("Central", 1, 0)),
	}, 14)
	b := projection.NewLayout([]entity.ProductInventory{
		inv("P9", "Z", bd("Central", 5, 2), bd("Tula", 3, 1)),
	}, 14)

	assert.Equal(t, a.Warehouses, b.Warehouses)
	assert.Equal(t, a.NumColumns(), b.NumColumns())
	assert.Equal(t, 13, a.NumColumns())
}

// TestLayout_FilaDeDatos bodegas del layout ausentes en el producto salen en cero.
func TestLayout_FilaDeDatos(t *testing.T) {
	l := projection.NewLayout([]entity.ProductInventory{
		inv("P1", "A", bd("Tula", 10, 2)),
		inv("P2", "B", bd("Central", 4, 0)),
	}, 14)

	row := l.DataRow(inv("P1", "A", bd("Tula", 10, 2)))
	require.Len(t, row, 13)
	assert.Equal(t, "0", row[7], "stock de Central en cero para P1")
	assert.Equal(t, "10", row[10], "stock de Tula")
	assert.Equal(t, "2", row[11], "pedidos de Tula")
}
