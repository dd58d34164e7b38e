package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"qrmenu/internal/model"
	"qrmenu/internal/mw"
	"qrmenu/internal/session"
)

type Deps struct {
	Accounts    AccountService
	Store       session.Store
	Controllers interface {
		Controllers
		SessionForgetter
	}
	Listers ListerFunc
	QRWait  time.Duration
}

// Register mounts the console pages on r. Session resolution must already be
// installed on r.
func Register(r chi.Router, d Deps) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Public routes
	r.Get("/", HomeHandler())
	r.Get("/login", LoginFormHandler())
	r.Post("/login", LoginHandler(d.Accounts, d.Store, d.Controllers))
	r.Get("/register", RegisterFormHandler())
	r.Post("/register", RegisterHandler(d.Accounts, d.Store, d.Controllers))
	r.Post("/logout", LogoutHandler(d.Store, d.Controllers))

	// Role views
	r.With(mw.RequireRole(model.RoleAdmin)).Get("/admin", AdminHandler())
	r.With(mw.RequireRole(model.RoleUser)).Get("/user", UserHandler())
	r.Route("/waiter", func(r chi.Router) {
		r.Use(mw.RequireRole(model.RoleWaiter))

		r.Get("/", WaiterHandler(d.Store, d.Listers))
		r.Get("/orders/{id}", OrderHandler(d.Store, d.Controllers, d.QRWait))
		r.Post("/orders/{id}/status", OrderStatusHandler(d.Store, d.Controllers))
	})
}
