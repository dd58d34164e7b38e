package handler

import (
	"context"
	"log/slog"
	"net/http"

	"qrmenu/internal/model"
	"qrmenu/internal/mw"
	"qrmenu/internal/session"
)

func AdminHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, "admin", http.StatusOK, page{Title: "Administration"})
	}
}

func UserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, "user", http.StatusOK, page{Title: "My restaurants"})
	}
}

type OrderLister interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
}

// ListerFunc returns an OrderLister acting with credential.
type ListerFunc func(credential string) OrderLister

func WaiterHandler(store session.Store, listers ListerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, ok := credential(w, r, store)
		if !ok {
			return
		}

		orders, err := listers(cred).ListOrders(r.Context())
		if err != nil {
			slog.Error("failed to list orders", "error", err)
			render(w, r, "waiter", http.StatusOK, page{Title: "Orders", Flash: "Could not load orders. Please try again later."})
			return
		}

		render(w, r, "waiter", http.StatusOK, page{Title: "Orders", Data: orders})
	}
}

// credential reads the stored credential of the request's session. It writes
// the error response itself when it returns false.
func credential(w http.ResponseWriter, r *http.Request, store session.Store) (string, bool) {
	entry, err := store.Get(r.Context(), mw.FromContext(r.Context()).ID)
	if err != nil {
		slog.Error("failed to read session", "error", err)
		renderError(w, r, http.StatusInternalServerError, "Could not read your session. Please try again.")
		return "", false
	}
	return entry.Credential, true
}
