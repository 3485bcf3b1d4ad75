package blingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// pageSize é o máximo de registros por página aceito pela API do Bling.
const pageSize = 100

type pageEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// fetchAllPages percorre um endpoint paginado do Bling acumulando os
// registros via decode. A varredura para na primeira página sem dados:
// data ausente, null ou lista vazia. Entre páginas o cliente aguarda o
// intervalo configurado para respeitar o rate limit do Bling.
func (c *BlingClient) fetchAllPages(
	ctx context.Context,
	accessToken string,
	endpointPath string,
	baseQuery url.Values,
	decode func(data json.RawMessage) (int, error),
) error {
	for page := 1; ; page++ {
		query := url.Values{}
		for key, values := range baseQuery {
			for _, value := range values {
				query.Add(key, value)
			}
		}
		query.Set("pagina", strconv.Itoa(page))
		query.Set("limite", strconv.Itoa(pageSize))

		body, err := c.doGet(ctx, accessToken, endpointPath, query)
		if err != nil {
			return fmt.Errorf("erro ao buscar a página %d de %s: %w", page, endpointPath, err)
		}

		var envelope pageEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return fmt.Errorf("erro ao decodificar a página %d de %s: %w", page, endpointPath, err)
		}

		if emptyPage(envelope.Data) {
			return nil
		}

		count, err := decode(envelope.Data)
		if err != nil {
			return fmt.Errorf("erro ao decodificar os registros da página %d de %s: %w", page, endpointPath, err)
		}
		if count == 0 {
			return nil
		}

		select {
		case <-time.After(c.cfg.Bling.PageDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func emptyPage(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return true
	}
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		return true
	}
	return false
}
