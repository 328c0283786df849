package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/warungpos/storefront/internal/domain"
)

// PostgresStore keeps session records in the sessions table, one row per
// token with the customer serialized as JSON.
type PostgresStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPostgresStore(db *sql.DB, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

func (s *PostgresStore) Save(ctx context.Context, token string, customer *domain.Customer) error {
	data, err := json.Marshal(customer)
	if err != nil {
		return err
	}

	// lib/pq encodes []byte as bytea, which a jsonb column rejects.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, customer, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (token) DO UPDATE SET customer = $2, updated_at = NOW()
	`, token, string(data))
	return err
}

func (s *PostgresStore) Load(ctx context.Context, token string) (*domain.Customer, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT customer FROM sessions WHERE token = $1
	`, token).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var customer domain.Customer
	if err := json.Unmarshal(data, &customer); err != nil || customer.ID == "" {
		// A corrupt record is as good as no record; drop it so the session
		// starts over anonymous.
		s.logger.Error("dropping corrupt session record", "token", token)
		_ = s.deleteToken(ctx, token)
		return nil, nil
	}

	return &customer, nil
}

func (s *PostgresStore) Delete(ctx context.Context, token string) error {
	return s.deleteToken(ctx, token)
}

func (s *PostgresStore) deleteToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}
