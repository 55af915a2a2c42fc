package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"canteen-orders/internal/cart"
	"canteen-orders/internal/domain"
	"canteen-orders/internal/notify"
	"canteen-orders/internal/service"
	"canteen-orders/internal/tracker"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	Cart    *cart.Store
	Orders  service.OrderServiceInterface
	Updates notify.Channel
}

func NewHandler(carts *cart.Store, orders service.OrderServiceInterface, updates notify.Channel) *Handler {
	return &Handler{Cart: carts, Orders: orders, Updates: updates}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items", h.changeCartQuantity).Methods("PATCH")
	r.HandleFunc("/api/cart/items/{kind}/{id}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/payment", h.updateOrderPayment).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/track", h.trackOrder).Methods("GET")
}

// buyerID reads the authenticated buyer from the identity collaborator. An
// empty value means unauthenticated, which every mutating route rejects.
func buyerID(r *http.Request) string {
	return r.Header.Get("X-Buyer-ID")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "order-svc",
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	buyer := buyerID(r)
	if buyer == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	lines, err := h.Cart.Snapshot(r.Context(), buyer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": lines})
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	buyer := buyerID(r)
	if buyer == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var item domain.CartLine
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if item.ItemID == "" || !item.ItemKind.Valid() || item.Name == "" ||
		item.UnitPrice < 0 || item.PreparationMinutes < 0 {
		http.Error(w, "Invalid cart item payload", http.StatusBadRequest)
		return
	}

	lines, err := h.Cart.AddOrIncrement(r.Context(), buyer, item)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": lines})
}

func (h *Handler) changeCartQuantity(w http.ResponseWriter, r *http.Request) {
	buyer := buyerID(r)
	if buyer == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var payload struct {
		ItemID   string          `json:"item_id"`
		ItemKind domain.ItemKind `json:"item_kind"`
		Delta    int             `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.ItemID == "" || !payload.ItemKind.Valid() {
		http.Error(w, "Invalid quantity payload", http.StatusBadRequest)
		return
	}

	lines, err := h.Cart.ChangeQuantity(r.Context(), buyer, payload.ItemID, payload.ItemKind, payload.Delta)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": lines})
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	buyer := buyerID(r)
	if buyer == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	kind := domain.ItemKind(vars["kind"])
	if !kind.Valid() {
		http.Error(w, "Invalid item kind", http.StatusBadRequest)
		return
	}

	lines, err := h.Cart.Remove(r.Context(), buyer, vars["id"], kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": lines})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	buyer := buyerID(r)
	if buyer == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if err := h.Cart.Clear(r.Context(), buyer); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	buyer := buyerID(r)
	if buyer == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Notes string `json:"notes"`
	}
	if r.Body != nil {
		// Empty body means an order without notes.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	header, err := h.Orders.PlaceOrder(r.Context(), buyer, payload.Notes)
	if err != nil {
		var partial *domain.PartialOrderError
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrUnauthenticated):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		case errors.As(err, &partial):
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"error":        "order was not fully placed, please contact staff",
				"order_number": partial.OrderNumber,
			})
		case errors.Is(err, domain.ErrRepositoryUnavailable):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, header)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	buyer := buyerID(r)
	if buyer == "" {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	headers, err := h.Orders.ListForBuyer(r.Context(), buyer)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if headers == nil {
		headers = []domain.OrderHeader{}
	}
	writeJSON(w, http.StatusOK, headers)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	header, lines, err := h.Orders.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if lines == nil {
		lines = []domain.OrderLine{}
	}

	writeJSON(w, http.StatusOK, struct {
		*domain.OrderHeader
		Items []domain.OrderLine `json:"items"`
	}{header, lines})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	qr, err := h.Orders.QRCode(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrQRNotAvailable):
			http.Error(w, err.Error(), http.StatusGone)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var payload struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !payload.Status.Valid() {
		http.Error(w, "Invalid order status", http.StatusBadRequest)
		return
	}

	header, err := h.Orders.SetStatus(r.Context(), orderID, payload.Status)
	if err != nil {
		h.writeUpdateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, header)
}

func (h *Handler) updateOrderPayment(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var payload struct {
		PaymentStatus domain.PaymentStatus `json:"payment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !payload.PaymentStatus.Valid() {
		http.Error(w, "Invalid payment status", http.StatusBadRequest)
		return
	}

	header, err := h.Orders.SetPayment(r.Context(), orderID, payload.PaymentStatus)
	if err != nil {
		h.writeUpdateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, header)
}

func (h *Handler) writeUpdateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		http.Error(w, "Order not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// trackOrder streams lifecycle updates over a websocket: current state
// first, then every accepted notification until the client goes away.
func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[order-svc] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	t, err := tracker.Open(r.Context(), orderID, h.Orders, h.Updates)
	if err != nil {
		conn.WriteJSON(map[string]string{"error": "order not found"})
		return
	}
	defer t.Close()

	updates := make(chan tracker.Update, 8)
	current := t.Observe(func(u tracker.Update) {
		select {
		case updates <- u:
		default:
			// Slow consumer; it will catch up on the next update.
		}
	})
	if err := conn.WriteJSON(current); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case u := <-updates:
			if err := conn.WriteJSON(u); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
