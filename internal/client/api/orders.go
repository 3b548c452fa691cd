package api

import (
	"context"
	"net/http"

	"github.com/gamestore/storefront/internal/models"
)

// CreateOrder submits an order-creation payload built from a cart snapshot.
func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.APIResponse, error) {
	var resp models.APIResponse
	err := c.doJSON(ctx, http.MethodPost, "/pedidos", req, &resp)
	return resp, err
}
