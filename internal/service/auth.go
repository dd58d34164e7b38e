package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"qrmenu/internal/model"
)

var ErrNoToken = errors.New("response carried no token")

func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	var raw []byte
	if err := c.do(ctx, "login", http.MethodPost, "/api/accounts/login", "", creds, &raw); err != nil {
		return "", err
	}
	return tokenFrom(raw)
}

func (c *Client) Register(ctx context.Context, reg model.Registration) (string, error) {
	var raw []byte
	if err := c.do(ctx, "register", http.MethodPost, "/api/accounts/register", "", reg, &raw); err != nil {
		return "", err
	}
	return tokenFrom(raw)
}

// tokenFrom accepts {"token": "..."}, a JSON string or a bare token body.
func tokenFrom(raw []byte) (string, error) {
	raw = bytes.TrimSpace(raw)

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Token != "" {
		return payload.Token, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, nil
	}
	if len(raw) == 0 || raw[0] == '{' || raw[0] == '[' {
		return "", ErrNoToken
	}
	return string(raw), nil
}
