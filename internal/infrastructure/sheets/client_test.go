package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliador-api/internal/domain"
	"github.com/jhoicas/Conciliador-api/pkg/config"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

// TestColumnLabel índice 1-based a letra de columna, con acarreo más allá de la Z.
func TestColumnLabel(t *testing.T) {
	cases := map[int]string{
		1:  "A",
		2:  "B",
		13: "M", // última columna con dos bodegas
		26: "Z",
		27: "AA",
		52: "AZ",
		53: "BA",
	}
	for n, want := range cases {
		assert.Equal(t, want, columnLabel(n), "columna %d", n)
	}
}

// TestWriteRange_NotacionA1 el bloque se traduce a un rango A1 con el ancho de
// la fila más larga.
func TestWriteRange_NotacionA1(t *testing.T) {
	var gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Range string `json:"range"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotRange = body.Range
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(config.SheetConfig{BaseURL: srv.URL, SheetName: "Inventario"}, logger.Nop())
	err := c.WriteRange(context.Background(), 3, 1, [][]string{
		{"ART-1", "P1", "5"},
		{"ART-2", "P2", "0"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Inventario!A3:C4", gotRange)
}

// TestDo_CuotaExcedida un 429 del servicio se traduce al error de cuota del dominio.
func TestDo_CuotaExcedida(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(config.SheetConfig{BaseURL: srv.URL, SheetName: "Inventario"}, logger.Nop())
	err := c.WriteRange(context.Background(), 1, 1, [][]string{{"x"}})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}
