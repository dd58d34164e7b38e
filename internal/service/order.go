package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"qrmenu/internal/model"
)

// OrderClient performs order requests with one session's credential.
type OrderClient struct {
	c     *Client
	token string
}

func (c *Client) Orders(token string) *OrderClient {
	return &OrderClient{c: c, token: token}
}

func (o *OrderClient) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	if err := o.c.do(ctx, "get order", http.MethodGet, fmt.Sprintf("/api/orders/%d", id), o.token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *OrderClient) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	path := fmt.Sprintf("/api/orders/%d/status?status=%s", id, url.QueryEscape(string(status)))

	var order model.Order
	if err := o.c.do(ctx, "update order status", http.MethodPut, path, o.token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *OrderClient) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := o.c.do(ctx, "list orders", http.MethodGet, "/api/orders", o.token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
