package mocks

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"canteen-orders/internal/domain"
)

type OrderService struct {
	mock.Mock
}

func NewOrderService(t mockConstructorTestingT) *OrderService {
	m := &OrderService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *OrderService) PlaceOrder(ctx context.Context, buyerID, notes string) (*domain.OrderHeader, error) {
	ret := _m.Called(ctx, buyerID, notes)
	var r0 *domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderHeader)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) Header(ctx context.Context, orderID string) (*domain.OrderHeader, error) {
	ret := _m.Called(ctx, orderID)
	var r0 *domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderHeader)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) Get(ctx context.Context, orderID string) (*domain.OrderHeader, []domain.OrderLine, error) {
	ret := _m.Called(ctx, orderID)
	var r0 *domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderHeader)
	}
	var r1 []domain.OrderLine
	if ret.Get(1) != nil {
		r1 = ret.Get(1).([]domain.OrderLine)
	}
	return r0, r1, ret.Error(2)
}

func (_m *OrderService) ListForBuyer(ctx context.Context, buyerID string) ([]domain.OrderHeader, error) {
	ret := _m.Called(ctx, buyerID)
	var r0 []domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OrderHeader)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) QRCode(ctx context.Context, orderID string) ([]byte, error) {
	ret := _m.Called(ctx, orderID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) QRLink(orderID string) string {
	return fmt.Sprintf("/api/orders/%s/qrcode", orderID)
}

func (_m *OrderService) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.OrderHeader, error) {
	ret := _m.Called(ctx, orderID, status)
	var r0 *domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderHeader)
	}
	return r0, ret.Error(1)
}

func (_m *OrderService) SetPayment(ctx context.Context, orderID string, status domain.PaymentStatus) (*domain.OrderHeader, error) {
	ret := _m.Called(ctx, orderID, status)
	var r0 *domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderHeader)
	}
	return r0, ret.Error(1)
}
