package marketplace_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Conciliador-api/internal/domain"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
	"github.com/jhoicas/Conciliador-api/internal/infrastructure/marketplace"
	"github.com/jhoicas/Conciliador-api/pkg/config"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

func newTestClient(statsURL, sellerURL string, attempts int) *marketplace.Client {
	cfg := config.MarketplaceConfig{
		StatsBaseURL:  statsURL,
		SellerBaseURL: sellerURL,
		APIKey:        "test-key",
		Timeout:       5 * time.Second,
	}
	return marketplace.NewClient(cfg, attempts, 0, logger.Nop())
}

// TestFetchStocks_MapeoDeCampos el feed de plataforma se mapea a registros
// crudos con el id de producto como clave textual.
func TestFetchStocks_MapeoDeCampos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Path, "/api/v1/supplier/stocks")
		w.Write([]byte(`[
			{"nmId": 123, "supplierArticle": "ART-1", "barcode": "460123", "warehouseName": "Tula", "quantity": 100},
			{"nmId": 456, "supplierArticle": "ART-2", "warehouseName": ""}
		]`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL, "", 1).FetchStocks(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, entity.SourcePlatform, records[0].Source)
	assert.Equal(t, "123", records[0].ProductKey)
	assert.Equal(t, "Tula", records[0].WarehouseNameRaw)
	assert.Equal(t, 100, records[0].Quantity)

	// Campos ausentes llegan en cero sin tumbar el lote
	assert.Equal(t, 0, records[1].Quantity)
	assert.Empty(t, records[1].WarehouseNameRaw)
}

// TestFetchStocks_ReintentoTrasError5xx un 500 transitorio se reintenta y la
// segunda respuesta completa el fetch.
func TestFetchStocks_ReintentoTrasError5xx(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"nmId": 1, "supplierArticle": "A", "warehouseName": "Tula", "quantity": 5}]`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL, "", 3).FetchStocks(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 2, calls)
}

// TestFetchStocks_ReintentosAgotados agotados los intentos, el error se reporta
// como feed no disponible.
func TestFetchStocks_ReintentosAgotados(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "", 2).FetchStocks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFeedUnavailable)
}

// TestFetchStocksByBarcodes_Lotes el feed del vendedor se consulta por POST con
// el conjunto de códigos y responde cantidades por bodega.
func TestFetchStocksByBarcodes_Lotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/stocks", r.URL.Path)
		w.Write([]byte(`{"stocks": [{"sku": "460123", "warehouseName": "Seller Warehouse", "amount": 50}]}`))
	}))
	defer srv.Close()

	records, err := newTestClient("", srv.URL, 1).FetchStocksByBarcodes(context.Background(), []string{"460123"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, entity.SourceSeller, records[0].Source)
	assert.Equal(t, "460123", records[0].Barcode)
	assert.Equal(t, 50, records[0].Quantity)
}

// TestFetchOrders_SridConRespaldoLegado los pedidos usan srid como identificador
// único; los registros legados sin srid caen al odid numérico. La cantidad del
// pedido viaja al registro crudo: perderla contaría los pedidos multi-unidad como uno.
func TestFetchOrders_SridConRespaldoLegado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/api/v1/supplier/orders")
		w.Write([]byte(`[
			{"nmId": 1, "supplierArticle": "A", "warehouseName": "Tula", "srid": "s-1", "isCancel": false, "quantity": 3},
			{"nmId": 1, "supplierArticle": "A", "warehouseName": "Tula", "odid": 777, "isCancel": true}
		]`))
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL, "", 1).FetchOrders(context.Background(), 14)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "s-1", records[0].UniqueOrderID)
	assert.False(t, records[0].IsCancelled)
	assert.Equal(t, 3, records[0].Quantity, "la cantidad multi-unidad debe conservarse")
	assert.Equal(t, "777", records[1].UniqueOrderID)
	assert.True(t, records[1].IsCancelled)
	assert.Equal(t, 0, records[1].Quantity, "sin cantidad en el feed queda en cero y aguas abajo cuenta como 1")
}
