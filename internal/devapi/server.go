// Package devapi is an in-memory stand-in for the QR-menu REST API, used for
// local development and tests of the console.
package devapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"qrmenu/internal/model"
)

type Server struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time

	mu          sync.RWMutex
	accounts    map[string]*account
	orders      map[int64]*model.Order
	nextOrderID int64
}

func New(secret string) *Server {
	return &Server{
		secret:      []byte(secret),
		tokenTTL:    24 * time.Hour,
		now:         time.Now,
		accounts:    make(map[string]*account),
		orders:      make(map[int64]*model.Order),
		nextOrderID: 1,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Post("/api/accounts/register", s.handleRegister)
	r.Post("/api/accounts/login", s.handleLogin)
	r.Post("/api/qrcode/generate", s.handleGenerateQR)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/api/orders", s.handleListOrders)
		r.Get("/api/orders/{id}", s.handleGetOrder)
		r.With(requireRoles(model.RoleWaiter, model.RoleAdmin)).Put("/api/orders/{id}/status", s.handleUpdateStatus)
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
