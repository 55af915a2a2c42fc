package domain

import (
	"math"
	"time"
)

type ItemKind string

const (
	KindDish  ItemKind = "dish"
	KindCombo ItemKind = "combo"
)

func (k ItemKind) Valid() bool {
	return k == KindDish || k == KindCombo
}

// DefaultPreparationMinutes is the floor applied to every order estimate so
// small orders still get a realistic buffer.
const DefaultPreparationMinutes = 15

type CartLine struct {
	ItemID             string   `json:"item_id"`
	ItemKind           ItemKind `json:"item_kind"`
	Name               string   `json:"name"`
	UnitPrice          float64  `json:"unit_price"`
	Quantity           int      `json:"quantity"`
	PreparationMinutes int      `json:"preparation_minutes"`
}

// Is reports whether the line matches the (itemID, kind) identity.
func (l CartLine) Is(itemID string, kind ItemKind) bool {
	return l.ItemID == itemID && l.ItemKind == kind
}

type OrderHeader struct {
	ID                 string        `json:"id"`
	OrderNumber        string        `json:"order_number"`
	BuyerID            string        `json:"buyer_id"`
	TotalAmount        float64       `json:"total_amount"`
	PreparationMinutes int           `json:"preparation_minutes"`
	EstimatedReadyAt   time.Time     `json:"estimated_ready_at"`
	PaymentQR          []byte        `json:"-"`
	QRCode             string        `json:"qr_code,omitempty"`
	Notes              string        `json:"notes,omitempty"`
	Status             OrderStatus   `json:"status"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	CreatedAt          time.Time     `json:"created_at"`
}

// PaymentPending reports whether the payment QR is still actionable.
func (h *OrderHeader) PaymentPending() bool {
	return h.PaymentStatus == PaymentPending
}

type OrderLine struct {
	OrderID   string   `json:"order_id"`
	ItemID    string   `json:"item_id"`
	ItemKind  ItemKind `json:"item_kind"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	ItemName  string   `json:"item_name"`
}

// Round2 normalizes a currency amount to two decimals.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CartTotal sums price*quantity over the lines, rounded to two decimals.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return Round2(total)
}

// CartPreparationMinutes is the longest preparation time across the lines,
// floored at DefaultPreparationMinutes.
func CartPreparationMinutes(lines []CartLine) int {
	minutes := DefaultPreparationMinutes
	for _, line := range lines {
		if line.PreparationMinutes > minutes {
			minutes = line.PreparationMinutes
		}
	}
	return minutes
}
