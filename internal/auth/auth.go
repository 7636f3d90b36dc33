// Package auth signs users in and issues the bearer tokens the HTTP layer
// checks on every protected route.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/validate"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleMismatch       = errors.New("selected role does not match this account")
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// DashboardPath is where a role lands after signing in.
func DashboardPath(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/dashboard"
	case domain.RoleVendor:
		return "/vendor"
	case domain.RoleManager:
		return "/reports"
	default:
		return "/consumption"
	}
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Service struct {
	users  UserRepository
	tokens *Tokens
	logger *slog.Logger
}

func NewService(users UserRepository, tokens *Tokens, logger *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Redirect  string    `json:"redirect"`
}

// Login checks the form, the password and the role chosen at sign-in.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string, role domain.Role) (*Session, error) {
	if err := validate.Login(email, password, role); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		s.logger.Info("login failed", "reason", "unknown email")
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("login failed", "reason", "bad password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	if user.Role != role {
		s.logger.Info("login failed", "reason", "role mismatch", "user_id", user.ID, "role", role)
		return nil, ErrRoleMismatch
	}

	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", "user_id", user.ID, "role", user.Role)
	return &Session{
		Token:     token,
		ExpiresAt: expires,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Redirect:  DashboardPath(user.Role),
	}, nil
}

// RequestPasswordReset validates the address and always succeeds for a
// well-formed one, so callers cannot probe which accounts exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if err := validate.ResetEmail(email); err != nil {
		return err
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	s.logger.Info("password reset requested", "matched", user != nil)
	return nil
}

// Authenticate resolves a bearer token to its claims.
func (s *Service) Authenticate(token string) (*Claims, error) {
	return s.tokens.Parse(token)
}
