package marketplace

import (
	"context"
	"fmt"

	"github.com/jhoicas/Conciliador-api/internal/application/ports"
	"github.com/jhoicas/Conciliador-api/internal/domain"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
)

var _ ports.SellerStockFeed = (*Client)(nil)

// El feed del vendedor acepta un máximo de códigos por petición; por encima se
// consulta en lotes.
const sellerBatchSize = 1000

type sellerStockRequest struct {
	Skus []string `json:"skus"`
}

type sellerStockResponse struct {
	Stocks []sellerStockDTO `json:"stocks"`
}

type sellerStockDTO struct {
	SKU           string `json:"sku"`
	WarehouseName string `json:"warehouseName"`
	Amount        int    `json:"amount"`
}

// FetchStocksByBarcodes consulta el stock en bodegas del vendedor (feed B) para
// el conjunto de códigos de barras dado. Este feed no conoce el producto: el
// enlace código→producto lo resuelve quien llama.
func (c *Client) FetchStocksByBarcodes(ctx context.Context, barcodes []string) ([]entity.RawStockRecord, error) {
	records := make([]entity.RawStockRecord, 0, len(barcodes))
	url := fmt.Sprintf("%s/api/v3/stocks", c.sellerBaseURL)

	for start := 0; start < len(barcodes); start += sellerBatchSize {
		end := min(start+sellerBatchSize, len(barcodes))

		var resp sellerStockResponse
		if err := c.postJSON(ctx, url, sellerStockRequest{Skus: barcodes[start:end]}, &resp); err != nil {
			return nil, fmt.Errorf("%w: stock del vendedor: %v", domain.ErrFeedUnavailable, err)
		}
		for _, d := range resp.Stocks {
			records = append(records, entity.RawStockRecord{
				Source:           entity.SourceSeller,
				Barcode:          d.SKU,
				WarehouseNameRaw: d.WarehouseName,
				Quantity:         d.Amount,
			})
		}
	}
	c.log.Info().
		Int("codigos", len(barcodes)).
		Int("registros", len(records)).
		Msg("stock del vendedor recibido")
	return records, nil
}
