package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"canteen-orders/internal/domain"
)

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t mockConstructorTestingT) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *OrderRepository) InsertOrderAtomic(ctx context.Context, header *domain.OrderHeader, lines []domain.OrderLine) error {
	ret := _m.Called(ctx, header, lines)
	return ret.Error(0)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, orderID string) (*domain.OrderHeader, error) {
	ret := _m.Called(ctx, orderID)
	var r0 *domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderHeader)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) GetOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	ret := _m.Called(ctx, orderID)
	var r0 []domain.OrderLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OrderLine)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListOrdersForBuyer(ctx context.Context, buyerID string) ([]domain.OrderHeader, error) {
	ret := _m.Called(ctx, buyerID)
	var r0 []domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OrderHeader)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) SavePaymentQR(ctx context.Context, orderID string, qr []byte) error {
	ret := _m.Called(ctx, orderID, qr)
	return ret.Error(0)
}

func (_m *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.OrderHeader, error) {
	ret := _m.Called(ctx, orderID, status)
	var r0 *domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderHeader)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) UpdatePayment(ctx context.Context, orderID string, status domain.PaymentStatus) (*domain.OrderHeader, error) {
	ret := _m.Called(ctx, orderID, status)
	var r0 *domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderHeader)
	}
	return r0, ret.Error(1)
}
