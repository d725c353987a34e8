package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	database "spendlog-server/src/db"
	"spendlog-server/src/models"

	"github.com/shopspring/decimal"
)

// PasswordHasher hashes and verifies passwords. auth.Bcrypt is the
// production implementation.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type UserService struct {
	users  UserStore
	hasher PasswordHasher
	cache  *database.IdentityCache
}

// NewUserService wires the identity layer. cache may be nil.
func NewUserService(users UserStore, hasher PasswordHasher, cache *database.IdentityCache) *UserService {
	return &UserService{users: users, hasher: hasher, cache: cache}
}

func (s *UserService) Register(ctx context.Context, login, password string, budget decimal.Decimal) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, login, hash, budget)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "registered user", "user_id", user.ID, "login", login)
	return user, nil
}

// CheckPassword reports whether password matches the stored hash for login.
// An unknown login is a mismatch, not an error.
func (s *UserService) CheckPassword(ctx context.Context, login, password string) (bool, error) {
	user, err := s.users.GetUserByUsername(ctx, login)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.hasher.Verify(password, user.PasswordHash), nil
}

// CurrentUser resolves a validated token subject to its user. It returns
// models.ErrNotFound when the login no longer exists.
func (s *UserService) CurrentUser(ctx context.Context, login string) (*models.User, error) {
	if u, ok := s.cache.Get(login); ok {
		return u, nil
	}

	user, err := s.users.GetUserByUsername(ctx, login)
	if err != nil {
		return nil, err
	}
	s.cache.Set(user)
	return user, nil
}

func (s *UserService) UpdateBudget(ctx context.Context, actor *models.User, budget decimal.Decimal) error {
	if err := s.users.UpdateUserBudget(ctx, actor.ID, budget); err != nil {
		return err
	}
	s.cache.Del(actor.Username)
	slog.InfoContext(ctx, "updated budget", "user_id", actor.ID, "budget", budget.String())
	return nil
}
