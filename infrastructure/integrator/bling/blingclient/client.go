package blingclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	blingdomain "github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/domain"
	"github.com/vfg2006/strategy-hub-api/internal/config"
)

type Client interface {
	GetOrders(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]blingdomain.Order, error)
	GetProducts(ctx context.Context, accessToken string) ([]blingdomain.Product, error)
	GetStockBalances(ctx context.Context, accessToken string, productIDs []int64) ([]blingdomain.StockBalance, error)
}

type BlingClient struct {
	httpClient *http.Client
	cfg        *config.Config
	backoff    BackoffPolicy
}

func NewClient(cfg *config.Config) Client {
	return &BlingClient{
		httpClient: &http.Client{
			Timeout: cfg.Bling.RequestTimeout,
		},
		cfg:     cfg,
		backoff: DefaultBackoffPolicy(),
	}
}

// doGet executa um GET autenticado contra a API do Bling, com retentativas
// para falhas transitórias, e devolve o corpo bruto da resposta.
func (c *BlingClient) doGet(ctx context.Context, accessToken, endpointPath string, query url.Values) ([]byte, error) {
	endpoint, err := url.Parse(c.cfg.Bling.APIURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, endpointPath)
	endpoint.RawQuery = query.Encode()

	var body []byte

	err = c.backoff.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return fmt.Errorf("erro ao criar a requisição: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("erro ao executar a requisição: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("erro ao ler a resposta: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &RequestError{StatusCode: resp.StatusCode, Body: string(respBody)}
		}

		body = respBody
		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}
