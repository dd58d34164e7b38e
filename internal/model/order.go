package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses is the display order of the status buttons.
var OrderStatuses = []OrderStatus{StatusPending, StatusCompleted, StatusCancelled}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type CustomerInfo struct {
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	TableNumber     *int   `json:"tableNumber,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type Order struct {
	ID           int64        `json:"id"`
	Status       OrderStatus  `json:"status"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	Items        []OrderItem  `json:"items"`
	TotalAmount  float64      `json:"totalAmount"`
	OrderDate    *Timestamp   `json:"orderDate,omitempty"`
}

func (o *Order) UnmarshalJSON(b []byte) error {
	type alias Order
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	*o = Order(a)
	return nil
}

var ErrInvalidOrder = errors.New("invalid order")

func (o *Order) Validate() error {
	if o.TotalAmount < 0 {
		return fmt.Errorf("%w: negative total amount", ErrInvalidOrder)
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, o.Status)
	}
	for i, it := range o.Items {
		if it.Price < 0 {
			return fmt.Errorf("%w: item %d has negative price", ErrInvalidOrder, i)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: item %d has non-positive quantity", ErrInvalidOrder, i)
		}
	}
	return nil
}

func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// QRRequest is the order summary the QR code is generated from.
type QRRequest struct {
	OrderID int64   `json:"orderId"`
	Amount  float64 `json:"amount"`
	Items   int     `json:"items"`
	Date    string  `json:"date,omitempty"`
}

func (o *Order) QRRequest() QRRequest {
	req := QRRequest{
		OrderID: o.ID,
		Amount:  o.TotalAmount,
		Items:   o.ItemCount(),
	}
	if o.OrderDate != nil {
		req.Date = o.OrderDate.Format(time.RFC3339)
	}
	return req
}

// Timestamp accepts RFC 3339 and zone-less local date-times.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}
