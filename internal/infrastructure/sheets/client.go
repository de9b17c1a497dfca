package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/Conciliador-api/internal/application/ports"
	"github.com/jhoicas/Conciliador-api/internal/domain"
	"github.com/jhoicas/Conciliador-api/pkg/config"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

var _ ports.GridStore = (*Client)(nil)

// Client adaptador GridStore sobre la API REST del servicio de hojas de cálculo.
// Traduce el direccionamiento 1-based del puerto a la notación A1 del servicio.
//
// Este cliente NO reintenta: un 429 se devuelve como domain.ErrQuotaExceeded y
// la política de reintentos vive en el motor de proyección, que conoce el techo
// y la espera configurados para la corrida.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	spreadsheetID string
	sheetName     string
	token         string
	log           *logger.Logger
}

// NewClient construye el adaptador hacia la hoja configurada.
func NewClient(cfg config.SheetConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		baseURL:       cfg.BaseURL,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		token:         cfg.Token,
		log:           log.Component("sheets"),
	}
}

type sheetProperties struct {
	Properties struct {
		GridProperties struct {
			RowCount    int `json:"rowCount"`
			ColumnCount int `json:"columnCount"`
		} `json:"gridProperties"`
	} `json:"properties"`
}

type valuesResponse struct {
	Values [][]string `json:"values"`
}

// Dimensions consulta filas y columnas actuales de la pestaña destino.
func (c *Client) Dimensions(ctx context.Context) (int, int, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s?ranges=%s&fields=sheets.properties.gridProperties",
		c.baseURL, c.spreadsheetID, url.QueryEscape(c.sheetName))

	var resp struct {
		Sheets []sheetProperties `json:"sheets"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return 0, 0, err
	}
	if len(resp.Sheets) == 0 {
		return 0, 0, fmt.Errorf("%w: pestaña %q", domain.ErrNotFound, c.sheetName)
	}
	grid := resp.Sheets[0].Properties.GridProperties
	return grid.RowCount, grid.ColumnCount, nil
}

// ReadAll lee todos los valores de la pestaña.
func (c *Client) ReadAll(ctx context.Context) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.baseURL, c.spreadsheetID, url.QueryEscape(c.sheetName))

	var resp valuesResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// Resize ajusta la pestaña al tamaño exacto pedido.
func (c *Client) Resize(ctx context.Context, rows, cols int) error {
	return c.batchUpdate(ctx, map[string]any{
		"updateSheetProperties": map[string]any{
			"properties": map[string]any{
				"title": c.sheetName,
				"gridProperties": map[string]any{
					"rowCount":    rows,
					"columnCount": cols,
				},
			},
			"fields": "gridProperties(rowCount,columnCount)",
		},
	})
}

// WriteRange escribe un bloque rectangular en una sola petición.
func (c *Client) WriteRange(ctx context.Context, row, col int, values [][]string) error {
	if len(values) == 0 {
		return nil
	}
	width := 0
	for _, r := range values {
		width = max(width, len(r))
	}
	rangeA1 := fmt.Sprintf("%s!%s%d:%s%d",
		c.sheetName,
		columnLabel(col), row,
		columnLabel(col+width-1), row+len(values)-1)

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?valueInputOption=RAW",
		c.baseURL, c.spreadsheetID, url.QueryEscape(rangeA1))

	body := map[string]any{"range": rangeA1, "values": values}
	return c.do(ctx, http.MethodPut, endpoint, body, nil)
}

// MergeCells fusiona los rangos de cabecera en un solo batchUpdate.
func (c *Client) MergeCells(ctx context.Context, ranges []ports.CellRange) error {
	if len(ranges) == 0 {
		return nil
	}
	requests := make([]map[string]any, 0, len(ranges))
	for _, r := range ranges {
		requests = append(requests, map[string]any{
			"mergeCells": map[string]any{
				"mergeType": "MERGE_ALL",
				"range": map[string]any{
					"startRowIndex":    r.Row - 1,
					"endRowIndex":      r.Row,
					"startColumnIndex": r.StartCol - 1,
					"endColumnIndex":   r.EndCol,
				},
			},
		})
	}
	return c.batchUpdate(ctx, requests...)
}

// ClearAll borra valores y fusiones de toda la pestaña.
func (c *Client) ClearAll(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:clear",
		c.baseURL, c.spreadsheetID, url.QueryEscape(c.sheetName))
	if err := c.do(ctx, http.MethodPost, endpoint, map[string]any{}, nil); err != nil {
		return err
	}
	return c.batchUpdate(ctx, map[string]any{
		"unmergeCells": map[string]any{},
	})
}

func (c *Client) batchUpdate(ctx context.Context, requests ...map[string]any) error {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s:batchUpdate", c.baseURL, c.spreadsheetID)
	return c.do(ctx, http.MethodPost, endpoint, map[string]any{"requests": requests}, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar petición: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("crear petición: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("almacén tabular: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return domain.ErrQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("almacén tabular respondió %d: %s", resp.StatusCode, string(data))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decodificar respuesta: %w", err)
		}
	}
	return nil
}

// columnLabel convierte un índice de columna 1-based a su letra (1→A, 27→AA).
func columnLabel(n int) string {
	label := ""
	for n > 0 {
		n--
		label = string(rune('A'+n%26)) + label
		n /= 26
	}
	return label
}
