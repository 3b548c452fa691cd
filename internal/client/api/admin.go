package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gamestore/storefront/internal/models"
)

// Admin endpoints. The server enforces the admin role on every route here;
// the client merely forwards the bearer token.

// Users lists all registered users.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var resp models.UsersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/usuarios", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// DeleteUser removes a user by id.
func (c *Client) DeleteUser(ctx context.Context, id string) (models.APIResponse, error) {
	var resp models.APIResponse
	err := c.doJSON(ctx, http.MethodDelete, "/usuarios/"+id, nil, &resp)
	return resp, err
}

// UpdateUser applies a partial update to a user. fields holds only the
// attributes to change, keyed by wire name.
func (c *Client) UpdateUser(ctx context.Context, id string, fields map[string]any) (models.APIResponse, error) {
	var resp models.APIResponse
	err := c.doJSON(ctx, http.MethodPut, "/usuarios/"+id, fields, &resp)
	return resp, err
}

// CreateProduct adds a new product.
func (c *Client) CreateProduct(ctx context.Context, fields map[string]any) (models.APIResponse, error) {
	var resp models.APIResponse
	err := c.doJSON(ctx, http.MethodPost, "/productos", fields, &resp)
	return resp, err
}

// UpdateProduct applies a partial update to a product.
func (c *Client) UpdateProduct(ctx context.Context, id string, fields map[string]any) (models.APIResponse, error) {
	var resp models.APIResponse
	err := c.doJSON(ctx, http.MethodPut, "/productos/"+id, fields, &resp)
	return resp, err
}

// DeleteProduct removes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, id string) (models.APIResponse, error) {
	var resp models.APIResponse
	err := c.doJSON(ctx, http.MethodDelete, "/productos/"+id, nil, &resp)
	return resp, err
}

// UploadProductImage uploads an image for a product as multipart form data.
// The field name "imagen" is what the server reads the file from.
func (c *Client) UploadProductImage(ctx context.Context, id, filename string, file io.Reader) (models.UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("imagen", filename)
	if err != nil {
		return models.UploadResponse{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return models.UploadResponse{}, err
	}
	if err := w.Close(); err != nil {
		return models.UploadResponse{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/productos/"+id+"/imagen", &buf, w.FormDataContentType())
	if err != nil {
		return models.UploadResponse{}, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return models.UploadResponse{}, err
	}
	defer resp.Body.Close()

	var out models.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.UploadResponse{}, err
	}
	return out, nil
}

// AdminOrders lists every order in the system.
func (c *Client) AdminOrders(ctx context.Context) ([]models.Order, error) {
	var resp models.OrdersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/pedidos/admin/all", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// OrderDetail fetches one order with its line items.
func (c *Client) OrderDetail(ctx context.Context, id string) (models.OrderDetail, error) {
	var resp models.OrderDetailResponse
	if err := c.doJSON(ctx, http.MethodGet, "/pedidos/"+id, nil, &resp); err != nil {
		return models.OrderDetail{}, err
	}
	return resp.Order, nil
}

// UpdateOrderStatus moves an order to a new status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (models.APIResponse, error) {
	var resp models.APIResponse
	err := c.doJSON(ctx, http.MethodPut, "/pedidos/"+id+"/estado", map[string]string{"estado": status}, &resp)
	return resp, err
}

// InvoicePDF downloads the invoice for an order.
func (c *Client) InvoicePDF(ctx context.Context, orderID string) ([]byte, error) {
	return c.doPDF(ctx, "/pedidos/"+orderID+"/factura/pdf")
}

// SalesReportPDF downloads the sales report, optionally bounded by
// YYYY-MM-DD dates.
func (c *Client) SalesReportPDF(ctx context.Context, from, to string) ([]byte, error) {
	path := "/admin/reportes/ventas/pdf"
	q := url.Values{}
	if from != "" {
		q.Set("fecha_inicio", from)
	}
	if to != "" {
		q.Set("fecha_fin", to)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.doPDF(ctx, path)
}

// InventoryReportPDF downloads the inventory report.
func (c *Client) InventoryReportPDF(ctx context.Context) ([]byte, error) {
	return c.doPDF(ctx, "/admin/reportes/inventario/pdf")
}
