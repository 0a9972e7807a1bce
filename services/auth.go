package services

import (
	"context"
	"net/http"

	"moviehub/models"
)

// Login authenticates with the backend and returns the issued credentials
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register creates a new account and returns the issued credentials
func (c *Client) Register(ctx context.Context, reg models.Registration) (*models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, reg, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}
