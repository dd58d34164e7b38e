package devapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"qrmenu/internal/model"
)

// AddOrder stores a copy of o under a fresh id and returns the id.
func (s *Server) AddOrder(o model.Order) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.nextOrderID
	s.nextOrderID++
	if o.Status == "" {
		o.Status = model.StatusPending
	}
	if o.OrderDate == nil {
		o.OrderDate = &model.Timestamp{Time: s.now().UTC().Truncate(time.Second)}
	}
	o.Items = append([]model.OrderItem(nil), o.Items...)
	s.orders[o.ID] = &o
	return o.ID
}

// Order returns a copy of the stored order.
func (s *Server) Order(id int64) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, false
	}
	return *o, true
}

func pathOrderID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	orders := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, *o)
	}
	s.mu.RUnlock()

	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathOrderID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	o, ok := s.Order(id)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathOrderID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	status := model.OrderStatus(r.URL.Query().Get("status"))
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	s.mu.Lock()
	o, ok := s.orders[id]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	o.Status = status
	updated := *o
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, updated)
}
