package orderview

import (
	"errors"
	"fmt"

	"qrmenu/internal/model"
)

const (
	LoadErrorMessage   = "Could not load order details. Please try again later."
	UpdateErrorMessage = "Could not update order status. Please try again."
)

// Returned by UpdateStatus when the request is dropped before any network call.
var (
	ErrStatusUnchanged = errors.New("order already has this status")
	ErrUpdateInFlight  = errors.New("status update already in progress")
	ErrNotLoaded       = errors.New("order not loaded")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// FetchError replaces the whole view with an error screen.
type FetchError struct {
	OrderID int64
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("load order %d: %v", e.OrderID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UpdateError leaves the previous order in place and raises an alert.
type UpdateError struct {
	OrderID int64
	Status  model.OrderStatus
	Err     error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update order %d to %s: %v", e.OrderID, e.Status, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// Skipped reports whether err is one of the silent no-op outcomes.
func Skipped(err error) bool {
	return errors.Is(err, ErrStatusUnchanged) || errors.Is(err, ErrUpdateInFlight)
}
