package api

import (
	"context"

	"shoplist/internal/model"
)

// AccountAPI wraps the account endpoints.
type AccountAPI struct {
	c *Client
}

func NewAccountAPI(c *Client) *AccountAPI {
	return &AccountAPI{c: c}
}

func (a *AccountAPI) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	var res model.AuthResponse
	if err := a.c.post(ctx, epLogin, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (a *AccountAPI) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	var res model.AuthResponse
	if err := a.c.post(ctx, epRegister, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteAccount removes the account identified by email. The server
// expects the email in the request body.
func (a *AccountAPI) DeleteAccount(ctx context.Context, email string) error {
	return a.c.delete(ctx, epDeleteAccount, model.DeleteAccountRequest{Email: email})
}
