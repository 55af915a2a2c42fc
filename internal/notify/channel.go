package notify

import (
	"sync"

	"canteen-orders/internal/domain"
)

type Handler func(domain.OrderHeader)

// Channel delivers header snapshots to subscribers scoped to one order. The
// returned cancel func releases the subscription; it is safe to call more
// than once.
type Channel interface {
	Subscribe(orderID string, fn Handler) (cancel func(), err error)
}

// Dispatcher is an in-process fanout of header snapshots keyed by order id.
// It backs the Kafka channel and stands alone in tests.
type Dispatcher struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[string]map[int]Handler)}
}

func (d *Dispatcher) Subscribe(orderID string, fn Handler) (func(), error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	if d.subs[orderID] == nil {
		d.subs[orderID] = make(map[int]Handler)
	}
	d.subs[orderID][id] = fn

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.subs[orderID], id)
		if len(d.subs[orderID]) == 0 {
			delete(d.subs, orderID)
		}
	}, nil
}

// Dispatch delivers one snapshot to every subscriber of that order. Handlers
// run outside the dispatcher lock, so a handler may cancel its own
// subscription without deadlocking.
func (d *Dispatcher) Dispatch(header domain.OrderHeader) {
	d.mu.Lock()
	handlers := make([]Handler, 0, len(d.subs[header.ID]))
	for _, fn := range d.subs[header.ID] {
		handlers = append(handlers, fn)
	}
	d.mu.Unlock()

	for _, fn := range handlers {
		fn(header)
	}
}
