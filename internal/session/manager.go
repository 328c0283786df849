package session

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/warungpos/storefront/internal/backend"
	"github.com/warungpos/storefront/internal/domain"
)

// Manager moves a session between its two states: anonymous (no customer
// record) and authenticated (one record held and persisted). All input
// validation happens here, before any remote call.
type Manager struct {
	store   Store
	backend *backend.Client
	logger  *slog.Logger
}

func NewManager(store Store, client *backend.Client, logger *slog.Logger) *Manager {
	return &Manager{
		store:   store,
		backend: client,
		logger:  logger,
	}
}

// Login authenticates against the remote service and persists the customer
// record for the session. On any failure the session stays anonymous.
func (m *Manager) Login(ctx context.Context, token, phone, password string) (*domain.Customer, error) {
	if strings.TrimSpace(phone) == "" || strings.TrimSpace(password) == "" {
		return nil, domain.NewValidationError("phone", "Nomor HP dan password harus diisi")
	}

	customer, err := m.backend.Login(ctx, phone, password)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, token, customer); err != nil {
		// The remote login succeeded; losing the persisted record only costs
		// session continuity across restarts.
		m.logger.Error("failed to persist session", "error", err, "customer_id", customer.ID)
	}

	m.logger.Info("customer logged in", "customer_id", customer.ID)
	return customer, nil
}

type RegisterInput struct {
	Name     string
	Phone    string
	Password string
	Email    string
	Address  string
}

// Register creates an account and logs the session in, with the same
// persistence semantics as Login.
func (m *Manager) Register(ctx context.Context, token string, in RegisterInput) (*domain.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidationError("name", "Nama harus diisi")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, domain.NewValidationError("phone", "Nomor HP harus diisi")
	}
	if strings.TrimSpace(in.Password) == "" || utf8.RuneCountInString(in.Password) < 6 {
		return nil, domain.NewValidationError("password", "Password minimal 6 karakter")
	}

	customer, err := m.backend.Register(ctx, backend.RegisterRequest{
		Name:     in.Name,
		Phone:    in.Phone,
		Password: in.Password,
		Email:    in.Email,
		Address:  in.Address,
	})
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(ctx, token, customer); err != nil {
		m.logger.Error("failed to persist session", "error", err, "customer_id", customer.ID)
	}

	m.logger.Info("customer registered", "customer_id", customer.ID)
	return customer, nil
}

// Logout clears the persisted record unconditionally.
func (m *Manager) Logout(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

// Current restores the session's customer record, or nil when the session is
// anonymous.
func (m *Manager) Current(ctx context.Context, token string) (*domain.Customer, error) {
	return m.store.Load(ctx, token)
}
