package service

import (
	"context"

	"canteen-orders/internal/domain"
)

// OrderRepository is the durable store for order headers and line items. The
// repository layer owns order-number uniqueness and the atomicity of the
// header+lines write; everything here relies on that.
type OrderRepository interface {
	InsertOrderAtomic(ctx context.Context, header *domain.OrderHeader, lines []domain.OrderLine) error
	GetOrder(ctx context.Context, orderID string) (*domain.OrderHeader, error)
	GetOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error)
	ListOrdersForBuyer(ctx context.Context, buyerID string) ([]domain.OrderHeader, error)
	SavePaymentQR(ctx context.Context, orderID string, qr []byte) error
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.OrderHeader, error)
	UpdatePayment(ctx context.Context, orderID string, status domain.PaymentStatus) (*domain.OrderHeader, error)
}

// CartSource is the slice of the cart store the order service needs: a
// snapshot going in, a clear after confirmed success.
type CartSource interface {
	Snapshot(ctx context.Context, buyerID string) ([]domain.CartLine, error)
	Clear(ctx context.Context, buyerID string) error
}

type NumberSource interface {
	Next(ctx context.Context) (string, error)
}

type QRGenerator interface {
	Issue(orderNumber string) ([]byte, error)
}

// UpdatePublisher pushes a header snapshot to the notification transport
// after every fulfillment-side write.
type UpdatePublisher interface {
	PublishUpdate(ctx context.Context, header *domain.OrderHeader) error
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, buyerID, notes string) (*domain.OrderHeader, error)
	Header(ctx context.Context, orderID string) (*domain.OrderHeader, error)
	Get(ctx context.Context, orderID string) (*domain.OrderHeader, []domain.OrderLine, error)
	ListForBuyer(ctx context.Context, buyerID string) ([]domain.OrderHeader, error)
	QRCode(ctx context.Context, orderID string) ([]byte, error)
	QRLink(orderID string) string
	SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.OrderHeader, error)
	SetPayment(ctx context.Context, orderID string, status domain.PaymentStatus) (*domain.OrderHeader, error)
}
