package marketplace

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/Conciliador-api/internal/application/ports"
	"github.com/jhoicas/Conciliador-api/internal/domain"
	"github.com/jhoicas/Conciliador-api/internal/domain/entity"
)

var _ ports.PlatformStockFeed = (*Client)(nil)

// platformStockDTO línea de stock del feed de estadísticas. Campos que no
// llegan quedan en su cero: cantidades ausentes valen 0 y nombres ausentes "",
// que aguas abajo se normaliza a la bodega desconocida.
type platformStockDTO struct {
	NmID            int64  `json:"nmId"`
	SupplierArticle string `json:"supplierArticle"`
	Barcode         string `json:"barcode"`
	WarehouseName   string `json:"warehouseName"`
	Quantity        int    `json:"quantity"`
}

// FetchStocks consulta el stock en bodegas del operador (feed A). El feed
// devuelve una línea por combinación producto-bodega, incluidas las
// pseudo-bodegas de tránsito.
func (c *Client) FetchStocks(ctx context.Context) ([]entity.RawStockRecord, error) {
	dateFrom := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	url := fmt.Sprintf("%s/api/v1/supplier/stocks?dateFrom=%s", c.statsBaseURL, dateFrom)

	var dtos []platformStockDTO
	if err := c.getJSON(ctx, url, &dtos); err != nil {
		return nil, fmt.Errorf("%w: stock de plataforma: %v", domain.ErrFeedUnavailable, err)
	}

	records := make([]entity.RawStockRecord, 0, len(dtos))
	for _, d := range dtos {
		records = append(records, entity.RawStockRecord{
			Source:           entity.SourcePlatform,
			ProductKey:       strconv.FormatInt(d.NmID, 10),
			SupplierArticle:  d.SupplierArticle,
			Barcode:          d.Barcode,
			WarehouseNameRaw: d.WarehouseName,
			Quantity:         d.Quantity,
		})
	}
	c.log.Info().Int("registros", len(records)).Msg("stock de plataforma recibido")
	return records, nil
}
