package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"canteen-orders/internal/domain"
)

// OrderService turns a cart snapshot into a durable order and owns the
// fulfillment-side status writes. Each placement is a single atomic unit:
// snapshot in, header out, no shared mutable state between concurrent calls.
type OrderService struct {
	repo      OrderRepository
	cart      CartSource
	numbers   NumberSource
	qrEncoder QRGenerator
	publisher UpdatePublisher
}

func NewOrderService(repo OrderRepository, cart CartSource, numbers NumberSource, qr QRGenerator, publisher UpdatePublisher) *OrderService {
	return &OrderService{
		repo:      repo,
		cart:      cart,
		numbers:   numbers,
		qrEncoder: qr,
		publisher: publisher,
	}
}

func (s *OrderService) PlaceOrder(ctx context.Context, buyerID, notes string) (*domain.OrderHeader, error) {
	if buyerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	lines, err := s.cart.Snapshot(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, &domain.OrderNumberError{Err: err}
	}

	qr, err := s.qrEncoder.Issue(number)
	if err != nil {
		return nil, &domain.QRGenerationError{OrderNumber: number, Err: err}
	}

	now := time.Now()
	prep := domain.CartPreparationMinutes(lines)
	header := &domain.OrderHeader{
		ID:                 uuid.NewString(),
		OrderNumber:        number,
		BuyerID:            buyerID,
		TotalAmount:        domain.CartTotal(lines),
		PreparationMinutes: prep,
		EstimatedReadyAt:   now.Add(time.Duration(prep) * time.Minute),
		PaymentQR:          qr,
		Notes:              strings.TrimSpace(notes),
		Status:             domain.StatusPending,
		PaymentStatus:      domain.PaymentPending,
		CreatedAt:          now,
	}

	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, domain.OrderLine{
			OrderID:   header.ID,
			ItemID:    line.ItemID,
			ItemKind:  line.ItemKind,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			ItemName:  line.Name,
		})
	}

	if err := s.repo.InsertOrderAtomic(ctx, header, orderLines); err != nil {
		return nil, err
	}

	header.QRCode = s.QRLink(header.ID)

	// The order is durable at this point; a failed cart clear must not turn
	// a placed order into an error.
	if err := s.cart.Clear(ctx, buyerID); err != nil {
		log.Printf("[order-svc] WARNING: failed to clear cart for buyer %s after order %s: %v", buyerID, number, err)
	}

	return header, nil
}

func (s *OrderService) Header(ctx context.Context, orderID string) (*domain.OrderHeader, error) {
	header, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	header.QRCode = s.QRLink(header.ID)
	return header, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.OrderHeader, []domain.OrderLine, error) {
	header, err := s.Header(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.repo.GetOrderLines(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return header, lines, nil
}

func (s *OrderService) ListForBuyer(ctx context.Context, buyerID string) ([]domain.OrderHeader, error) {
	if buyerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	headers, err := s.repo.ListOrdersForBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	for i := range headers {
		headers[i].QRCode = s.QRLink(headers[i].ID)
	}
	return headers, nil
}

// QRCode returns the stored payment QR for an order while payment is still
// pending, regenerating it if the stored payload went missing.
func (s *OrderService) QRCode(ctx context.Context, orderID string) ([]byte, error) {
	header, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !header.PaymentPending() {
		return nil, domain.ErrQRNotAvailable
	}
	if len(header.PaymentQR) == 0 {
		regenerated, err := s.qrEncoder.Issue(header.OrderNumber)
		if err != nil {
			return nil, &domain.QRGenerationError{OrderNumber: header.OrderNumber, Err: err}
		}
		if err := s.repo.SavePaymentQR(ctx, orderID, regenerated); err != nil {
			log.Printf("[order-svc] WARNING: failed to cache regenerated QR for order %s: %v", header.OrderNumber, err)
		}
		return regenerated, nil
	}
	return header.PaymentQR, nil
}

func (s *OrderService) QRLink(orderID string) string {
	return fmt.Sprintf("/api/orders/%s/qrcode", orderID)
}

// SetStatus applies a fulfillment-side lifecycle transition and publishes the
// fresh snapshot to observers. Transitions only move forward; terminal states
// are locked.
func (s *OrderService) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.OrderHeader, error) {
	current, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, updated)
	return updated, nil
}

// SetPayment settles the independent payment axis: pending -> success|failed.
func (s *OrderService) SetPayment(ctx context.Context, orderID string, status domain.PaymentStatus) (*domain.OrderHeader, error) {
	current, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanSettle(current.PaymentStatus, status) {
		return nil, fmt.Errorf("%w: payment %s -> %s", domain.ErrInvalidTransition, current.PaymentStatus, status)
	}

	updated, err := s.repo.UpdatePayment(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, updated)
	return updated, nil
}

func (s *OrderService) publish(ctx context.Context, header *domain.OrderHeader) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishUpdate(ctx, header); err != nil {
		log.Printf("[order-svc] WARNING: failed to publish update for order %s: %v", header.OrderNumber, err)
	}
}

var _ OrderServiceInterface = (*OrderService)(nil)
