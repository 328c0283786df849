package storefront

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/warungpos/storefront/internal/backend"
	"github.com/warungpos/storefront/internal/cart"
	"github.com/warungpos/storefront/internal/catalog"
	"github.com/warungpos/storefront/internal/checkout"
	"github.com/warungpos/storefront/internal/domain"
	"github.com/warungpos/storefront/internal/session"
)

// SessionHeader carries the opaque browsing-session token. The server mints
// one on first contact and echoes it back; the app stores it and sends it on
// every call.
const SessionHeader = "X-Session-Token"

type Handler struct {
	catalog  *catalog.Catalog
	carts    *cart.Store
	sessions *session.Manager
	flow     *checkout.Flow
	backend  *backend.Client
	logger   *slog.Logger
}

func NewHandler(
	cat *catalog.Catalog,
	carts *cart.Store,
	sessions *session.Manager,
	flow *checkout.Flow,
	client *backend.Client,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:  cat,
		carts:    carts,
		sessions: sessions,
		flow:     flow,
		backend:  client,
		logger:   logger,
	}
}

// sessionToken returns the request's session token, minting and echoing a
// fresh one when the client didn't send any.
func (h *Handler) sessionToken(w http.ResponseWriter, r *http.Request) string {
	token := r.Header.Get(SessionHeader)
	if token == "" {
		token = uuid.NewString()
	}
	w.Header().Set(SessionHeader, token)
	return token
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeOperationError maps the three failure classes to HTTP: validation
// errors are the client's to fix, service-reported messages pass through
// verbatim, and transport failures collapse to a generic localized message.
func (h *Handler) writeOperationError(w http.ResponseWriter, err error, fallback string) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		h.writeError(w, http.StatusBadRequest, vErr.Message)
		return
	}

	var svcErr *backend.Error
	if errors.As(err, &svcErr) {
		h.writeError(w, http.StatusUnprocessableEntity, svcErr.Message)
		return
	}

	h.writeError(w, http.StatusBadGateway, fallback)
}
