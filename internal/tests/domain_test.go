package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"canteen-orders/internal/domain"
)

func TestCartTotal_RoundsToTwoDecimals(t *testing.T) {
	lines := []domain.CartLine{
		{UnitPrice: 10.333, Quantity: 3},
		{UnitPrice: 0.055, Quantity: 1},
	}
	assert.Equal(t, 31.05, domain.CartTotal(lines))
	assert.Equal(t, 0.0, domain.CartTotal(nil))
}

func TestCartPreparationMinutes(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.CartLine
		want  int
	}{
		{
			name: "max across lines",
			lines: []domain.CartLine{
				{PreparationMinutes: 10}, {PreparationMinutes: 25}, {PreparationMinutes: 20},
			},
			want: 25,
		},
		{
			name:  "floor for fast orders",
			lines: []domain.CartLine{{PreparationMinutes: 3}},
			want:  domain.DefaultPreparationMinutes,
		},
		{
			name:  "empty cart still gets the floor",
			lines: nil,
			want:  domain.DefaultPreparationMinutes,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, domain.CartPreparationMinutes(testCase.lines))
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.OrderStatus
		want     bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusConfirmed, domain.StatusPreparing, true},
		{domain.StatusPreparing, domain.StatusReady, true},
		{domain.StatusReady, domain.StatusCompleted, true},
		{domain.StatusPending, domain.StatusPreparing, false},
		{domain.StatusReady, domain.StatusConfirmed, false},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusReady, domain.StatusCancelled, true},
		{domain.StatusCompleted, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusPending, false},
		{domain.StatusPending, domain.OrderStatus("shipped"), false},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, domain.CanTransition(testCase.from, testCase.to),
			"%s -> %s", testCase.from, testCase.to)
	}
}

func TestStaleStatus(t *testing.T) {
	tests := []struct {
		current, next domain.OrderStatus
		stale         bool
	}{
		{domain.StatusPreparing, domain.StatusConfirmed, true},
		{domain.StatusPreparing, domain.StatusReady, false},
		{domain.StatusPreparing, domain.StatusPreparing, false},
		{domain.StatusPreparing, domain.StatusCancelled, false},
		{domain.StatusCompleted, domain.StatusReady, true},
		{domain.StatusCancelled, domain.StatusConfirmed, true},
		{domain.StatusPending, domain.OrderStatus("garbage"), true},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.stale, domain.StaleStatus(testCase.current, testCase.next),
			"current=%s next=%s", testCase.current, testCase.next)
	}
}

func TestPaymentSettlement(t *testing.T) {
	assert.True(t, domain.CanSettle(domain.PaymentPending, domain.PaymentSuccess))
	assert.True(t, domain.CanSettle(domain.PaymentPending, domain.PaymentFailed))
	assert.False(t, domain.CanSettle(domain.PaymentSuccess, domain.PaymentFailed))
	assert.False(t, domain.CanSettle(domain.PaymentFailed, domain.PaymentPending))
	assert.False(t, domain.CanSettle(domain.PaymentPending, domain.PaymentPending))
}
