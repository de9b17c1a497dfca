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

var _ ports.OrdersFeed = (*Client)(nil)

// orderDTO línea de pedido del feed de estadísticas. Srid es el identificador
// estable del pedido a través de snapshots de estado; Odid es el identificador
// legado que algunos registros antiguos aún traen en su lugar.
type orderDTO struct {
	NmID            int64  `json:"nmId"`
	SupplierArticle string `json:"supplierArticle"`
	WarehouseName   string `json:"warehouseName"`
	Srid            string `json:"srid"`
	Odid            int64  `json:"odid"`
	IsCancel        bool   `json:"isCancel"`
	Quantity        int    `json:"quantity"`
}

// FetchOrders consulta los pedidos de la ventana de análisis (feed C). Cada
// registro es un pedido individual; el doble conteo entre snapshots se resuelve
// aguas abajo por identificador único.
func (c *Client) FetchOrders(ctx context.Context, lookbackDays int) ([]entity.RawOrderRecord, error) {
	dateFrom := time.Now().AddDate(0, 0, -lookbackDays).Format("2006-01-02")
	url := fmt.Sprintf("%s/api/v1/supplier/orders?dateFrom=%s", c.statsBaseURL, dateFrom)

	var dtos []orderDTO
	if err := c.getJSON(ctx, url, &dtos); err != nil {
		return nil, fmt.Errorf("%w: pedidos: %v", domain.ErrFeedUnavailable, err)
	}

	records := make([]entity.RawOrderRecord, 0, len(dtos))
	for _, d := range dtos {
		id := d.Srid
		if id == "" && d.Odid != 0 {
			id = strconv.FormatInt(d.Odid, 10)
		}
		records = append(records, entity.RawOrderRecord{
			ProductKey:       strconv.FormatInt(d.NmID, 10),
			SupplierArticle:  d.SupplierArticle,
			WarehouseNameRaw: d.WarehouseName,
			UniqueOrderID:    id,
			IsCancelled:      d.IsCancel,
			Quantity:         d.Quantity,
		})
	}
	c.log.Info().Int("registros", len(records)).Msg("pedidos recibidos")
	return records, nil
}
