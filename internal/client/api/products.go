package api

import (
	"context"
	"net/http"

	"github.com/gamestore/storefront/internal/models"
)

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var resp models.ProductsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/productos", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := c.doJSON(ctx, http.MethodGet, "/productos/"+id, nil, &p)
	return p, err
}
