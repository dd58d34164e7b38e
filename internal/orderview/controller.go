// Package orderview drives the order detail view: loading an order, the
// status buttons and the QR code shown next to it.
package orderview

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"qrmenu/internal/model"
)

type OrderFetcher interface {
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
}

type StatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
}

type QRGenerator interface {
	GenerateQRCode(ctx context.Context, req model.QRRequest) (string, error)
}

type ViewState string

const (
	StateIdle    ViewState = "idle"
	StateLoading ViewState = "loading"
	StateReady   ViewState = "ready"
	StateError   ViewState = "error"
)

type QRState string

const (
	QRIdle    QRState = "idle"
	QRLoading QRState = "loading"
	QRSuccess QRState = "success"
	QRFailed  QRState = "failed"
)

// QRTask is the background QR generation started by Load.
type QRTask struct {
	State QRState
	Image string
	Err   error
}

type StatusAction struct {
	Status  model.OrderStatus
	Enabled bool
}

// View is a copy of the controller state, safe to render.
type View struct {
	State    ViewState
	Message  string
	Alert    string
	Order    *model.Order
	QR       QRTask
	Updating bool
	Actions  []StatusAction
}

// Controller holds the state of one order detail view. At most one status
// update runs at a time; further requests are rejected, not queued.
type Controller struct {
	fetcher OrderFetcher
	updater StatusUpdater
	qr      QRGenerator

	mu       sync.RWMutex
	state    ViewState
	message  string
	alert    string
	order    *model.Order
	updating bool
	qrTask   QRTask
	qrSeq    uint64
	qrDone   chan struct{}

	bg sync.WaitGroup
}

// New returns an idle controller. qr may be nil, in which case no QR code is
// generated.
func New(fetcher OrderFetcher, updater StatusUpdater, qr QRGenerator) *Controller {
	return &Controller{
		fetcher: fetcher,
		updater: updater,
		qr:      qr,
		state:   StateIdle,
		qrTask:  QRTask{State: QRIdle},
	}
}

// Load fetches the order. On success the QR code is generated in the
// background; its outcome never affects the result of Load.
func (c *Controller) Load(ctx context.Context, id int64) error {
	c.mu.Lock()
	c.state = StateLoading
	c.message = ""
	c.mu.Unlock()

	order, err := c.fetcher.GetOrder(ctx, id)
	switch {
	case err != nil:
	case order == nil:
		err = errors.New("empty response")
	default:
		err = order.Validate()
	}
	if err != nil {
		c.mu.Lock()
		c.state = StateError
		c.message = LoadErrorMessage
		c.order = nil
		c.alert = ""
		c.qrSeq++
		c.qrTask = QRTask{State: QRIdle}
		c.qrDone = nil
		c.mu.Unlock()

		slog.Error("failed to load order", "order_id", id, "error", err)
		return &FetchError{OrderID: id, Err: err}
	}

	c.mu.Lock()
	c.state = StateReady
	c.order = order
	c.alert = ""
	c.qrSeq++
	seq := c.qrSeq
	var done chan struct{}
	if c.qr != nil {
		done = make(chan struct{})
		c.qrTask = QRTask{State: QRLoading}
	}
	c.qrDone = done
	c.mu.Unlock()

	if c.qr != nil {
		c.bg.Add(1)
		go c.generateQR(context.WithoutCancel(ctx), seq, done, order.QRRequest())
	}
	return nil
}

func (c *Controller) generateQR(ctx context.Context, seq uint64, done chan struct{}, req model.QRRequest) {
	defer c.bg.Done()
	defer close(done)

	img, err := c.qr.GenerateQRCode(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.qrSeq {
		return
	}
	if err != nil {
		slog.Warn("qr code generation failed", "order_id", req.OrderID, "error", err)
		c.qrTask = QRTask{State: QRFailed, Err: err}
		return
	}
	c.qrTask = QRTask{State: QRSuccess, Image: img}
}

// UpdateStatus asks the server to move the order to status and adopts the
// order it returns. ErrStatusUnchanged and ErrUpdateInFlight are returned
// without contacting the server.
func (c *Controller) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	c.mu.Lock()
	switch {
	case c.order == nil:
		c.mu.Unlock()
		return ErrNotLoaded
	case c.order.Status == status:
		c.mu.Unlock()
		return ErrStatusUnchanged
	case c.updating:
		c.mu.Unlock()
		return ErrUpdateInFlight
	}
	c.updating = true
	c.mu.Unlock()

	updated, err := c.updater.UpdateOrderStatus(ctx, id, status)
	if err == nil && updated == nil {
		err = errors.New("empty response")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.updating = false

	if err != nil {
		c.alert = UpdateErrorMessage
		slog.Error("failed to update order status", "order_id", id, "status", status, "error", err)
		return &UpdateError{OrderID: id, Status: status, Err: err}
	}

	c.order = updated
	c.alert = ""
	slog.Info("order status updated", "order_id", id, "status", updated.Status)
	return nil
}

// DismissAlert clears the update failure alert.
func (c *Controller) DismissAlert() {
	c.mu.Lock()
	c.alert = ""
	c.mu.Unlock()
}

func (c *Controller) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updating
}

func (c *Controller) Snapshot() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v := View{
		State:    c.state,
		Message:  c.message,
		Alert:    c.alert,
		QR:       c.qrTask,
		Updating: c.updating,
	}
	if c.order != nil {
		o := *c.order
		o.Items = slices.Clone(c.order.Items)
		v.Order = &o

		v.Actions = make([]StatusAction, 0, len(model.OrderStatuses))
		for _, s := range model.OrderStatuses {
			v.Actions = append(v.Actions, StatusAction{
				Status:  s,
				Enabled: s != o.Status && !c.updating,
			})
		}
	}
	return v
}

// AwaitQR waits for the current QR task until it ends or ctx is done, and
// returns its state at that point.
func (c *Controller) AwaitQR(ctx context.Context) QRTask {
	c.mu.RLock()
	done := c.qrDone
	c.mu.RUnlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.qrTask
}

// Wait blocks until every QR task started so far has finished.
func (c *Controller) Wait() {
	c.bg.Wait()
}
