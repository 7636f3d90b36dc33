package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vbonduro/officepantry/internal/domain"
)

type UserStore struct {
	db DBTX
}

func NewUserStore(db DBTX) *UserStore {
	return &UserStore{db: db}
}

// Create stores a user. Emails are kept lower-cased.
func (s *UserStore) Create(ctx context.Context, name, email, passwordHash string, role domain.Role) (*domain.User, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)
	`, name, strings.ToLower(strings.TrimSpace(email)), passwordHash, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.get(ctx, `WHERE id = ?`, id)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.get(ctx, `WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserStore) get(ctx context.Context, where string, arg any) (*domain.User, error) {
	u := &domain.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at FROM users `+where, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}
