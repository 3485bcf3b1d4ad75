package blingclient

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	blingdomain "github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/domain"
)

// GetOrders busca todos os pedidos de venda do período, varrendo as páginas
// de GET /pedidos/vendas até esgotar os resultados.
func (c *BlingClient) GetOrders(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]blingdomain.Order, error) {
	orders := []blingdomain.Order{}

	query := url.Values{}
	query.Set("dataInicial", startDate.Format(time.DateOnly))
	query.Set("dataFinal", endDate.Format(time.DateOnly))

	err := c.fetchAllPages(ctx, accessToken, "/pedidos/vendas", query, func(data json.RawMessage) (int, error) {
		var page []blingdomain.Order
		if err := json.Unmarshal(data, &page); err != nil {
			return 0, err
		}
		orders = append(orders, page...)
		return len(page), nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}
