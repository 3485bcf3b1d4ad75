package blingclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	blingdomain "github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/domain"
)

// stockChunkSize limita a quantidade de idsProdutos[] por chamada, para a
// query string não estourar o limite de tamanho de URL.
const stockChunkSize = 100

// GetStockBalances busca os saldos consolidados de estoque dos produtos
// informados. GET /estoques/saldos é paginado como os demais endpoints, e a
// varredura acontece por lotes de ids: cada lote é percorrido página a página
// até a primeira página vazia.
func (c *BlingClient) GetStockBalances(ctx context.Context, accessToken string, productIDs []int64) ([]blingdomain.StockBalance, error) {
	balances := []blingdomain.StockBalance{}

	for start := 0; start < len(productIDs); start += stockChunkSize {
		end := start + stockChunkSize
		if end > len(productIDs) {
			end = len(productIDs)
		}

		query := url.Values{}
		for _, id := range productIDs[start:end] {
			query.Add("idsProdutos[]", strconv.FormatInt(id, 10))
		}

		err := c.fetchAllPages(ctx, accessToken, "/estoques/saldos", query, func(data json.RawMessage) (int, error) {
			var page []blingdomain.StockBalance
			if err := json.Unmarshal(data, &page); err != nil {
				return 0, err
			}

			balances = append(balances, page...)
			return len(page), nil
		})
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar saldos de estoque: %w", err)
		}
	}

	return balances, nil
}
