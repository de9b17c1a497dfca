package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/Conciliador-api/pkg/config"
	"github.com/jhoicas/Conciliador-api/pkg/logger"
)

// Client cliente HTTP de los feeds del marketplace. Implementa los tres puertos
// de feed (stock de plataforma, stock del vendedor y pedidos).
//
// Los errores de transporte (timeout, 429, 5xx) se reintentan un número acotado
// de veces con espera fija aquí, en la frontera del fetch; si aun así fallan, la
// corrida aborta: la conciliación no puede avanzar con una sola fuente.
type Client struct {
	httpClient    *http.Client
	statsBaseURL  string
	sellerBaseURL string
	apiKey        string
	attempts      int
	backoff       time.Duration
	log           *logger.Logger
}

// NewClient construye el cliente con el timeout de red de la configuración.
func NewClient(cfg config.MarketplaceConfig, attempts int, backoff time.Duration, log *logger.Logger) *Client {
	if attempts < 1 {
		attempts = 1
	}
	return &Client{
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		statsBaseURL:  cfg.StatsBaseURL,
		sellerBaseURL: cfg.SellerBaseURL,
		apiKey:        cfg.APIKey,
		attempts:      attempts,
		backoff:       backoff,
		log:           log.Component("marketplace"),
	}
}

// getJSON hace GET con reintentos y decodifica la respuesta en out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	return c.doJSON(ctx, http.MethodGet, url, nil, out)
}

// postJSON hace POST con cuerpo JSON, reintentos y decodifica la respuesta en out.
func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("serializar cuerpo: %w", err)
	}
	return c.doJSON(ctx, http.MethodPost, url, payload, out)
}

func (c *Client) doJSON(ctx context.Context, method, url string, body []byte, out any) error {
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		lastErr = c.doOnce(ctx, method, url, body, out)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) || attempt == c.attempts {
			break
		}
		c.log.Warn().
			Str("url", url).
			Int("attempt", attempt).
			Err(lastErr).
			Msg("feed no disponible; reintentando")
		select {
		case <-time.After(c.backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, url string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("crear petición: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &transportError{err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &transportError{status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("feed respondió %d: %s", resp.StatusCode, string(data))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta: %w", err)
	}
	return nil
}

// transportError error de transporte reintentables (red caída, 429, 5xx).
type transportError struct {
	status int
	err    error
}

func (e *transportError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("transporte: %v", e.err)
	}
	return fmt.Sprintf("transporte: status %d", e.status)
}

func (e *transportError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	_, ok := err.(*transportError)
	return ok
}
