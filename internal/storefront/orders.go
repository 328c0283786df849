package storefront

import (
	"encoding/json"
	"net/http"

	"github.com/warungpos/storefront/internal/checkout"
	"github.com/warungpos/storefront/internal/domain"
)

type checkoutRequest struct {
	CustomerName  string `json:"customerName"`
	Phone         string `json:"phone"`
	TableNumber   string `json:"tableNumber"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"paymentMethod"`
}

// HandleCheckout submits the session's cart as an order. The cart is cleared
// only after the remote service confirms, so a failed attempt can be retried
// without re-entering anything.
func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.sessions.Current(r.Context(), token)
	if err != nil {
		h.logger.Error("failed to load session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	c := h.carts.Cart(token)
	conf, err := h.flow.Submit(r.Context(), checkout.Input{
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		TableNumber:   req.TableNumber,
		Notes:         req.Notes,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	}, c.Lines(), customer)
	if err != nil {
		h.writeOperationError(w, err, "Gagal memproses pesanan")
		return
	}

	c.Clear()

	h.writeJSON(w, http.StatusCreated, map[string]any{"order": conf})
}

// HandleOrders lists the logged-in customer's order history.
func (h *Handler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	customer, err := h.sessions.Current(r.Context(), token)
	if err != nil {
		h.logger.Error("failed to load session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	if customer == nil {
		h.writeError(w, http.StatusUnauthorized, "Silakan login terlebih dahulu")
		return
	}

	orders, err := h.backend.CustomerOrders(r.Context(), customer.ID)
	if err != nil {
		h.writeOperationError(w, err, "Gagal memuat pesanan")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

type trackingView struct {
	Order              *domain.Order `json:"order"`
	StatusLabel        string        `json:"statusLabel"`
	PaymentStatusLabel string        `json:"paymentStatusLabel"`
}

// HandleTracking reports the live state of one order. No login required; the
// order id itself is the capability.
func (h *Handler) HandleTracking(w http.ResponseWriter, r *http.Request) {
	h.sessionToken(w, r)

	orderID := r.PathValue("orderId")
	if orderID == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.backend.Tracking(r.Context(), orderID)
	if err != nil {
		h.writeOperationError(w, err, "Gagal memuat pesanan")
		return
	}

	h.writeJSON(w, http.StatusOK, trackingView{
		Order:              order,
		StatusLabel:        domain.OrderStatusLabel(order.OrderStatus),
		PaymentStatusLabel: domain.PaymentStatusLabel(order.PaymentStatus),
	})
}
