package domain

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

var statusRank = map[OrderStatus]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusPreparing: 2,
	StatusReady:     3,
	StatusCompleted: 4,
	StatusCancelled: 5,
}

func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether the fulfillment side may move an order from
// one status to the next. Progress is strictly one step at a time; cancelled
// is reachable from any non-terminal status.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if to == StatusCancelled {
		return !from.Terminal()
	}
	return statusRank[to] == statusRank[from]+1
}

// StaleStatus reports whether a delivered status snapshot is older than the
// one already held. The notification transport gives no ordering guarantee,
// so a snapshot that regresses in the lifecycle is discarded rather than
// overwriting forward progress.
func StaleStatus(current, next OrderStatus) bool {
	if current == next {
		return false
	}
	if current.Terminal() {
		return true
	}
	if !next.Valid() {
		return true
	}
	if next == StatusCancelled {
		return false
	}
	return statusRank[next] < statusRank[current]
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentSuccess || s == PaymentFailed
}

// CanSettle reports whether a payment state change is allowed. Settlement is
// one-way: once a payment succeeded or failed it never reopens.
func CanSettle(from, to PaymentStatus) bool {
	return from == PaymentPending && (to == PaymentSuccess || to == PaymentFailed)
}
