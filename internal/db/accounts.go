package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonathan/resume-builder/internal/types"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// ErrEmailTaken is returned by CreateUser when another account owns the email.
var ErrEmailTaken = errors.New("email already registered")

// User is an account row including its password hash.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Account returns the client-facing view of u, without the password hash.
func (u *User) Account() *types.Account {
	if u == nil {
		return nil
	}
	return &types.Account{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail lowercases and trims an email so lookups are case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser inserts an account and returns its ID.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO accounts (id, name, email, password_hash) VALUES ($1, $2, $3, $4)`,
		id, strings.TrimSpace(name), NormalizeEmail(email), passwordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return uuid.Nil, ErrEmailTaken
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// CheckEmailExists reports whether an account uses email.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`,
		NormalizeEmail(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// GetUser retrieves an account by ID. Returns nil, nil when it does not exist.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return db.scanUser(db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM accounts WHERE id = $1`, id))
}

// GetUserByEmail retrieves an account by email. Returns nil, nil when it does not exist.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	return db.scanUser(db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM accounts WHERE email = $1`, email))
}

// DeleteUser removes an account and its form state.
func (db *DB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (db *DB) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
