package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"qrmenu/internal/model"
	"qrmenu/internal/mw"
	"qrmenu/internal/orderview"
	"qrmenu/internal/service"
	"qrmenu/internal/session"
)

// Controllers hands out the order view controller of a browser session.
type Controllers interface {
	Get(sid string, orderID int64, credential string) *orderview.Controller
}

func orderID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// OrderHandler renders the order detail view. It waits up to qrWait for the
// QR code so that it is usually part of the first render.
func OrderHandler(store session.Store, ctrls Controllers, qrWait time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := orderID(r)
		if !ok {
			renderError(w, r, http.StatusNotFound, "Order not found.")
			return
		}
		cred, ok := credential(w, r, store)
		if !ok {
			return
		}

		ctrl := ctrls.Get(mw.FromContext(r.Context()).ID, id, cred)

		code := http.StatusOK
		// Reloading while an update is outstanding could overwrite its result.
		if !ctrl.Busy() {
			if err := ctrl.Load(r.Context(), id); err != nil {
				code = loadFailureCode(err)
			}
		}

		if qrWait > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), qrWait)
			ctrl.AwaitQR(ctx)
			cancel()
		}

		renderOrder(w, r, code, ctrl.Snapshot())
	}
}

func OrderStatusHandler(store session.Store, ctrls Controllers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := orderID(r)
		if !ok {
			renderError(w, r, http.StatusNotFound, "Order not found.")
			return
		}
		status := model.OrderStatus(r.PostFormValue("status"))
		if !status.Valid() {
			renderError(w, r, http.StatusBadRequest, "Unknown order status.")
			return
		}
		cred, ok := credential(w, r, store)
		if !ok {
			return
		}

		ctrl := ctrls.Get(mw.FromContext(r.Context()).ID, id, cred)
		if v := ctrl.Snapshot(); v.Order == nil && !v.Updating {
			if err := ctrl.Load(r.Context(), id); err != nil {
				renderOrder(w, r, loadFailureCode(err), ctrl.Snapshot())
				return
			}
		}

		back := fmt.Sprintf("/waiter/orders/%d", id)
		err := ctrl.UpdateStatus(r.Context(), id, status)
		switch {
		case err == nil, orderview.Skipped(err):
			http.Redirect(w, r, back, http.StatusSeeOther)
		case errors.Is(err, orderview.ErrNotLoaded):
			http.Redirect(w, r, back, http.StatusSeeOther)
		default:
			renderOrder(w, r, http.StatusBadGateway, ctrl.Snapshot())
		}
	}
}

func loadFailureCode(err error) int {
	if service.IsStatus(err, http.StatusNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func renderOrder(w http.ResponseWriter, r *http.Request, code int, v orderview.View) {
	title := "Order"
	if v.Order != nil {
		title = fmt.Sprintf("Order #%d", v.Order.ID)
	}
	render(w, r, "order", code, page{Title: title, Data: v})
}
