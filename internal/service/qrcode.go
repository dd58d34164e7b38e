package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"qrmenu/internal/model"
)

var ErrQRGeneration = errors.New("qr code generation failed")

type qrResponse struct {
	Success bool   `json:"success"`
	QRCode  string `json:"qrCode"`
	Error   string `json:"error"`
}

type QRClient struct {
	c     *Client
	token string
}

func (c *Client) QR(token string) *QRClient {
	return &QRClient{c: c, token: token}
}

// GenerateQRCode returns the image data URL (or image URL) for the summary.
func (q *QRClient) GenerateQRCode(ctx context.Context, req model.QRRequest) (string, error) {
	var resp qrResponse
	if err := q.c.do(ctx, "generate qr code", http.MethodPost, "/api/qrcode/generate", q.token, req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("%w: %s", ErrQRGeneration, resp.Error)
	}
	if resp.QRCode == "" {
		return "", fmt.Errorf("%w: empty image", ErrQRGeneration)
	}
	return resp.QRCode, nil
}
