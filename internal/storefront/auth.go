package storefront

import (
	"encoding/json"
	"net/http"

	"github.com/warungpos/storefront/internal/session"
)

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.sessions.Login(r.Context(), token, req.Phone, req.Password)
	if err != nil {
		h.writeOperationError(w, err, "Login gagal")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"customer": customer})
}

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Address  string `json:"address"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.sessions.Register(r.Context(), token, session.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
		Email:    req.Email,
		Address:  req.Address,
	})
	if err != nil {
		h.writeOperationError(w, err, "Registrasi gagal")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{"customer": customer})
}

// HandleLogout drops the customer record and the session's cart. Logging out
// an anonymous session succeeds and does nothing.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	if err := h.sessions.Logout(r.Context(), token); err != nil {
		h.logger.Error("failed to clear session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	h.carts.Drop(token)

	h.writeJSON(w, http.StatusOK, map[string]any{"customer": nil})
}

// HandleMe reports who the session belongs to; customer is null for
// anonymous sessions.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(w, r)

	customer, err := h.sessions.Current(r.Context(), token)
	if err != nil {
		h.logger.Error("failed to load session", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"customer": customer})
}
