package tracker

import (
	"context"
	"log"
	"sync"
	"time"

	"canteen-orders/internal/domain"
	"canteen-orders/internal/notify"
)

// HeaderReader fetches the current header once when a tracker opens.
type HeaderReader interface {
	Header(ctx context.Context, orderID string) (*domain.OrderHeader, error)
}

// Update is what observers see on every accepted snapshot.
type Update struct {
	OrderNumber      string               `json:"order_number"`
	Status           domain.OrderStatus   `json:"status"`
	PaymentStatus    domain.PaymentStatus `json:"payment_status"`
	EstimatedReadyAt time.Time            `json:"estimated_ready_at"`
	PaymentPending   bool                 `json:"payment_pending"`
}

type Observer func(Update)

// Tracker is a live handle on one order's lifecycle. It fetches the header
// once, subscribes to change notifications, discards stale deliveries and
// surfaces the freshest state to observers. Observers run under the tracker
// lock and must not block or call back into the tracker.
type Tracker struct {
	orderID string

	mu        sync.Mutex
	header    domain.OrderHeader
	observers []Observer
	cancel    func()
	closed    bool
}

// Open fetches the order and wires the subscription. The caller owns the
// handle and must Close it on every exit path.
func Open(ctx context.Context, orderID string, reader HeaderReader, channel notify.Channel) (*Tracker, error) {
	header, err := reader.Header(ctx, orderID)
	if err != nil {
		return nil, err
	}

	t := &Tracker{orderID: orderID, header: *header}
	cancel, err := channel.Subscribe(orderID, t.receive)
	if err != nil {
		return nil, err
	}
	t.cancel = cancel
	return t, nil
}

func (t *Tracker) receive(header domain.OrderHeader) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A delivery racing Close is dropped, not an error.
	if t.closed {
		return
	}
	if domain.StaleStatus(t.header.Status, header.Status) {
		log.Printf("[order-svc] discarding stale update for order %s: %s delivered after %s",
			t.header.OrderNumber, header.Status, t.header.Status)
		return
	}

	t.header = header
	update := t.update()
	for _, fn := range t.observers {
		fn(update)
	}
}

// Observe registers an observer for future updates. Returns the current
// state so the caller starts from a known snapshot.
func (t *Tracker) Observe(fn Observer) Update {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.observers = append(t.observers, fn)
	}
	return t.update()
}

// Snapshot returns the last accepted state.
func (t *Tracker) Snapshot() Update {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.update()
}

func (t *Tracker) update() Update {
	return Update{
		OrderNumber:      t.header.OrderNumber,
		Status:           t.header.Status,
		PaymentStatus:    t.header.PaymentStatus,
		EstimatedReadyAt: t.header.EstimatedReadyAt,
		PaymentPending:   t.header.PaymentPending(),
	}
}

// Close releases the subscription. Idempotent; once it returns no observer
// is called again.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.observers = nil
	if t.cancel != nil {
		t.cancel()
	}
}
