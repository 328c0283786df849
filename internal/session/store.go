package session

import (
	"context"

	"github.com/warungpos/storefront/internal/domain"
)

// Store persists at most one customer record per session token. It is the
// server-side equivalent of the mobile client's single local-storage key:
// written on login/register, cleared on logout, read once when a session
// comes back.
type Store interface {
	Save(ctx context.Context, token string, customer *domain.Customer) error
	// Load returns (nil, nil) when no record exists. Corrupt stored data is
	// treated as absent, not as an error.
	Load(ctx context.Context, token string) (*domain.Customer, error)
	Delete(ctx context.Context, token string) error
}
