package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrUnauthenticated       = errors.New("buyer is not authenticated")
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrQRNotAvailable        = errors.New("payment is no longer pending")
	ErrRepositoryUnavailable = errors.New("order repository unavailable")
)

// PartialOrderError reports that the order header was written but the line
// items were not. The caller must not treat the order as placed; the cart is
// left intact so nothing is lost.
type PartialOrderError struct {
	OrderNumber string
	Err         error
}

func (e *PartialOrderError) Error() string {
	return fmt.Sprintf("order %s persisted without line items: %v", e.OrderNumber, e.Err)
}

func (e *PartialOrderError) Unwrap() error { return e.Err }

// QRGenerationError is fatal to placement: an order the buyer cannot pay for
// must never be created.
type QRGenerationError struct {
	OrderNumber string
	Err         error
}

func (e *QRGenerationError) Error() string {
	return fmt.Sprintf("payment QR generation failed for order %s: %v", e.OrderNumber, e.Err)
}

func (e *QRGenerationError) Unwrap() error { return e.Err }

// OrderNumberError means both the sequence-backed generator and the
// timestamp fallback were unable to produce a number.
type OrderNumberError struct {
	Err error
}

func (e *OrderNumberError) Error() string {
	return fmt.Sprintf("order number generation failed: %v", e.Err)
}

func (e *OrderNumberError) Unwrap() error { return e.Err }
