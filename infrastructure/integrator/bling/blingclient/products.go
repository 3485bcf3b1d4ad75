package blingclient

import (
	"context"
	"encoding/json"
	"net/url"

	blingdomain "github.com/vfg2006/strategy-hub-api/infrastructure/integrator/bling/domain"
)

// GetProducts busca o catálogo completo de produtos via GET /produtos.
func (c *BlingClient) GetProducts(ctx context.Context, accessToken string) ([]blingdomain.Product, error) {
	products := []blingdomain.Product{}

	err := c.fetchAllPages(ctx, accessToken, "/produtos", url.Values{}, func(data json.RawMessage) (int, error) {
		var page []blingdomain.Product
		if err := json.Unmarshal(data, &page); err != nil {
			return 0, err
		}
		products = append(products, page...)
		return len(page), nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}
