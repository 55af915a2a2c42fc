package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"canteen-orders/internal/domain"
)

type CartSource struct {
	mock.Mock
}

func NewCartSource(t mockConstructorTestingT) *CartSource {
	m := &CartSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *CartSource) Snapshot(ctx context.Context, buyerID string) ([]domain.CartLine, error) {
	ret := _m.Called(ctx, buyerID)
	var r0 []domain.CartLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CartLine)
	}
	return r0, ret.Error(1)
}

func (_m *CartSource) Clear(ctx context.Context, buyerID string) error {
	ret := _m.Called(ctx, buyerID)
	return ret.Error(0)
}

type NumberSource struct {
	mock.Mock
}

func NewNumberSource(t mockConstructorTestingT) *NumberSource {
	m := &NumberSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *NumberSource) Next(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t mockConstructorTestingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *QRGenerator) Issue(orderNumber string) ([]byte, error) {
	ret := _m.Called(orderNumber)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

type UpdatePublisher struct {
	mock.Mock
}

func NewUpdatePublisher(t mockConstructorTestingT) *UpdatePublisher {
	m := &UpdatePublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *UpdatePublisher) PublishUpdate(ctx context.Context, header *domain.OrderHeader) error {
	ret := _m.Called(ctx, header)
	return ret.Error(0)
}

type SequenceSource struct {
	mock.Mock
}

func NewSequenceSource(t mockConstructorTestingT) *SequenceSource {
	m := &SequenceSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *SequenceSource) NextOrderNumber(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

type HeaderReader struct {
	mock.Mock
}

func NewHeaderReader(t mockConstructorTestingT) *HeaderReader {
	m := &HeaderReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *HeaderReader) Header(ctx context.Context, orderID string) (*domain.OrderHeader, error) {
	ret := _m.Called(ctx, orderID)
	var r0 *domain.OrderHeader
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.OrderHeader)
	}
	return r0, ret.Error(1)
}
