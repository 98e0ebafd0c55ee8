package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/storage"
)

// UserStore is a storage.Store holding one account's form state.
type UserStore struct {
	db        *DB
	accountID uuid.UUID
}

// StoreFor returns the key/value store scoped to accountID.
func (db *DB) StoreFor(accountID uuid.UUID) storage.Store {
	return &UserStore{db: db, accountID: accountID}
}

// Get returns the value under key, or storage.ErrNotFound.
func (s *UserStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT value FROM form_state WHERE account_id = $1 AND key = $2`,
		s.accountID, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *UserStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO form_state (account_id, key, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (account_id, key) DO UPDATE SET value = $3, updated_at = NOW()`,
		s.accountID, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *UserStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.pool.Exec(ctx,
		`DELETE FROM form_state WHERE account_id = $1 AND key = $2`,
		s.accountID, key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
