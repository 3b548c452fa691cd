package api

import (
	"context"
	"net/http"

	"github.com/gamestore/storefront/internal/models"
)

// loginRequest is the credentials payload for POST /usuarios/login.
type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"password"`
}

// Login submits credentials. Wrong credentials come back as a structured
// failure (Success=false), not an error.
func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/usuarios/login", loginRequest{Email: email, Password: password}, &resp)
	return resp, err
}

// Register forwards a registration profile. The server performs all
// validation.
func (c *Client) Register(ctx context.Context, profile models.RegisterRequest) (models.APIResponse, error) {
	var resp models.APIResponse
	err := c.doJSON(ctx, http.MethodPost, "/usuarios/registro", profile, &resp)
	return resp, err
}
