package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "canteen-orders/internal/api/http"
	"canteen-orders/internal/cart"
	"canteen-orders/internal/domain"
	"canteen-orders/internal/mocks"
	"canteen-orders/internal/notify"
)

func newTestRouter(t *testing.T) (*mux.Router, *cart.Store, *mocks.OrderService) {
	t.Helper()
	carts := cart.NewStore(cart.NewMemoryPersistence())
	orders := mocks.NewOrderService(t)
	handler := httpapi.NewHandler(carts, orders, notify.NewDispatcher())

	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r, carts, orders
}

func doJSON(t *testing.T, router *mux.Router, method, path, buyer string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	if buyer != "" {
		req.Header.Set("X-Buyer-ID", buyer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCartEndpoints_RequireAuthentication(t *testing.T) {
	router, _, _ := newTestRouter(t)

	paths := []struct {
		method, path string
	}{
		{"GET", "/api/cart"},
		{"POST", "/api/cart/items"},
		{"PATCH", "/api/cart/items"},
		{"DELETE", "/api/cart/items/dish/d1"},
		{"DELETE", "/api/cart"},
		{"POST", "/api/orders"},
		{"GET", "/api/orders"},
	}
	for _, p := range paths {
		rec := doJSON(t, router, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestCartEndpoints_AddAndRead(t *testing.T) {
	router, _, _ := newTestRouter(t)

	item := domain.CartLine{
		ItemID: "d1", ItemKind: domain.KindDish, Name: "Pad Thai",
		UnitPrice: 60, PreparationMinutes: 10,
	}
	rec := doJSON(t, router, "POST", "/api/cart/items", "buyer-1", item)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, "POST", "/api/cart/items", "buyer-1", item)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "GET", "/api/cart", "buyer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Items []domain.CartLine `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Items, 1)
	assert.Equal(t, 2, payload.Items[0].Quantity)
}

func TestCartEndpoints_RejectBadPayloads(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/cart/items", "buyer-1", domain.CartLine{
		ItemID: "d1", ItemKind: "sandwichish", Name: "Mystery",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, "POST", "/api/cart/items", "buyer-1", domain.CartLine{
		ItemKind: domain.KindDish, Name: "No ID", UnitPrice: 10,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, "DELETE", "/api/cart/items/beverage/d1", "buyer-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrderEndpoint_Success(t *testing.T) {
	router, _, orders := newTestRouter(t)

	header := &domain.OrderHeader{
		ID: "o-1", OrderNumber: "ORD-000070", BuyerID: "buyer-1",
		TotalAmount: 200, Status: domain.StatusPending, PaymentStatus: domain.PaymentPending,
	}
	orders.On("PlaceOrder", mock.Anything, "buyer-1", "no onions").Return(header, nil).Once()

	rec := doJSON(t, router, "POST", "/api/orders", "buyer-1", map[string]string{"notes": "no onions"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.OrderHeader
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ORD-000070", got.OrderNumber)
	assert.Equal(t, 200.0, got.TotalAmount)
}

func TestPlaceOrderEndpoint_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "empty cart", err: domain.ErrEmptyCart, wantCode: http.StatusBadRequest},
		{name: "partial order", err: &domain.PartialOrderError{OrderNumber: "ORD-000071", Err: assert.AnError}, wantCode: http.StatusBadGateway},
		{name: "repository down", err: domain.ErrRepositoryUnavailable, wantCode: http.StatusServiceUnavailable},
		{name: "qr failure", err: &domain.QRGenerationError{OrderNumber: "ORD-000072", Err: assert.AnError}, wantCode: http.StatusInternalServerError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			router, _, orders := newTestRouter(t)
			orders.On("PlaceOrder", mock.Anything, "buyer-1", "").Return(nil, testCase.err).Once()

			rec := doJSON(t, router, "POST", "/api/orders", "buyer-1", nil)
			assert.Equal(t, testCase.wantCode, rec.Code)
		})
	}
}

func TestPlaceOrderEndpoint_PartialOrderCarriesNumber(t *testing.T) {
	router, _, orders := newTestRouter(t)
	orders.On("PlaceOrder", mock.Anything, "buyer-1", "").
		Return(nil, &domain.PartialOrderError{OrderNumber: "ORD-000073", Err: assert.AnError}).Once()

	rec := doJSON(t, router, "POST", "/api/orders", "buyer-1", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ORD-000073", payload["order_number"])
}

func TestGetOrderEndpoint(t *testing.T) {
	router, _, orders := newTestRouter(t)

	header := &domain.OrderHeader{ID: "o-2", OrderNumber: "ORD-000074", Status: domain.StatusPreparing}
	lines := []domain.OrderLine{{OrderID: "o-2", ItemID: "d1", ItemName: "Dish A", Quantity: 2, UnitPrice: 60}}
	orders.On("Get", mock.Anything, "o-2").Return(header, lines, nil).Once()

	rec := doJSON(t, router, "GET", "/api/orders/o-2", "buyer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		OrderNumber string             `json:"order_number"`
		Items       []domain.OrderLine `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ORD-000074", payload.OrderNumber)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "Dish A", payload.Items[0].ItemName)
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	router, _, orders := newTestRouter(t)
	orders.On("Get", mock.Anything, "ghost").Return(nil, nil, domain.ErrOrderNotFound).Once()

	rec := doJSON(t, router, "GET", "/api/orders/ghost", "buyer-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQRCodeEndpoint(t *testing.T) {
	router, _, orders := newTestRouter(t)
	orders.On("QRCode", mock.Anything, "o-3").Return([]byte("png-bytes"), nil).Once()

	rec := doJSON(t, router, "GET", "/api/orders/o-3/qrcode", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestQRCodeEndpoint_GoneAfterSettlement(t *testing.T) {
	router, _, orders := newTestRouter(t)
	orders.On("QRCode", mock.Anything, "o-4").Return(nil, domain.ErrQRNotAvailable).Once()

	rec := doJSON(t, router, "GET", "/api/orders/o-4/qrcode", "", nil)
	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	router, _, orders := newTestRouter(t)

	updated := &domain.OrderHeader{ID: "o-5", Status: domain.StatusConfirmed}
	orders.On("SetStatus", mock.Anything, "o-5", domain.StatusConfirmed).Return(updated, nil).Once()

	rec := doJSON(t, router, "PATCH", "/api/orders/o-5/status", "", map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateStatusEndpoint_Conflicts(t *testing.T) {
	router, _, orders := newTestRouter(t)
	orders.On("SetStatus", mock.Anything, "o-6", domain.StatusReady).
		Return(nil, domain.ErrInvalidTransition).Once()

	rec := doJSON(t, router, "PATCH", "/api/orders/o-6/status", "", map[string]string{"status": "ready"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, "PATCH", "/api/orders/o-6/status", "", map[string]string{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrdersEndpoint(t *testing.T) {
	router, _, orders := newTestRouter(t)

	orders.On("ListForBuyer", mock.Anything, "buyer-1").Return([]domain.OrderHeader{
		{ID: "o-8", OrderNumber: "ORD-000076"},
		{ID: "o-7", OrderNumber: "ORD-000075"},
	}, nil).Once()

	rec := doJSON(t, router, "GET", "/api/orders", "buyer-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload []domain.OrderHeader
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload, 2)
	assert.Equal(t, "ORD-000076", payload[0].OrderNumber)
}
