package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrmenu/internal/model"
)

func newTestClient(t *testing.T, r http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second)
}

func TestGetOrder(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "7", chi.URLParam(r, "id"))
		_, _ = io.WriteString(w, `{"id":7,"items":[{"name":"Soup","price":5.0,"quantity":2}],"totalAmount":10.0}`)
	})
	c := newTestClient(t, r)

	order, err := c.Orders("tok").GetOrder(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, []model.OrderItem{{Name: "Soup", Price: 5, Quantity: 2}}, order.Items)
}

func TestGetOrderStatusError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"order not found"}`)
	})
	c := newTestClient(t, r)

	_, err := c.Orders("tok").GetOrder(context.Background(), 9)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, "order not found", se.Message)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestGetOrderNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL, time.Second).Orders("tok").GetOrder(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusNotFound))
}

func TestUpdateOrderStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/api/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "COMPLETED", r.URL.Query().Get("status"))
		_, _ = io.WriteString(w, `{"id":7,"status":"COMPLETED","totalAmount":10}`)
	})
	c := newTestClient(t, r)

	order, err := c.Orders("tok").UpdateOrderStatus(context.Background(), 7, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, order.Status)
}

func TestListOrders(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1},{"id":2,"status":"CANCELLED"}]`)
	})
	c := newTestClient(t, r)

	orders, err := c.Orders("tok").ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, model.StatusPending, orders[0].Status)
	assert.Equal(t, model.StatusCancelled, orders[1].Status)
}

func TestGenerateQRCode(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/qrcode/generate", func(w http.ResponseWriter, r *http.Request) {
		var req model.QRRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.OrderID == 1 {
			_, _ = io.WriteString(w, `{"success":false,"error":"generator offline"}`)
			return
		}
		assert.Equal(t, model.QRRequest{OrderID: 7, Amount: 10, Items: 2}, req)
		_, _ = io.WriteString(w, `{"success":true,"qrCode":"data:image/png;base64,AAAA"}`)
	})
	c := newTestClient(t, r)

	img, err := c.QR("tok").GenerateQRCode(context.Background(), model.QRRequest{OrderID: 7, Amount: 10, Items: 2})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", img)

	_, err = c.QR("tok").GenerateQRCode(context.Background(), model.QRRequest{OrderID: 1})
	assert.ErrorIs(t, err, ErrQRGeneration)
}

func TestLoginTokenShapes(t *testing.T) {
	bodies := map[string]string{
		"object": `{"token":"a.b.c"}`,
		"string": `"a.b.c"`,
		"bare":   "a.b.c\n",
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/api/accounts/login", func(w http.ResponseWriter, r *http.Request) {
				var creds model.Credentials
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
				assert.Equal(t, model.Credentials{Email: "a@b.c", Password: "pw"}, creds)
				assert.Empty(t, r.Header.Get("Authorization"))
				_, _ = io.WriteString(w, body)
			})
			c := newTestClient(t, r)

			tok, err := c.Login(context.Background(), model.Credentials{Email: "a@b.c", Password: "pw"})
			require.NoError(t, err)
			assert.Equal(t, "a.b.c", tok)
		})
	}
}

func TestLoginRejected(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/accounts/login", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
	})
	c := newTestClient(t, r)

	_, err := c.Login(context.Background(), model.Credentials{Email: "a@b.c", Password: "pw"})
	require.True(t, IsStatus(err, http.StatusUnauthorized))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "invalid email or password", se.Message)
}

func TestRegisterWithoutToken(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/accounts/register", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":3}`)
	})
	c := newTestClient(t, r)

	_, err := c.Register(context.Background(), model.Registration{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrNoToken)
}
