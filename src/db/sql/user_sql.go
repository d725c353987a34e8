package db

import (
	"context"
	"fmt"

	"spendlog-server/src/models"

	"github.com/shopspring/decimal"
)

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string, budget decimal.Decimal) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, budget)
		VALUES ($1, $2, $3)
		RETURNING user_id, username, password_hash, budget, created_at
	`
	var u models.User
	err := s.pool.QueryRow(ctx, query, username, passwordHash, budget).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Budget, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", mapErr(err))
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT user_id, username, password_hash, budget, created_at
		FROM users
		WHERE username = $1
	`
	var u models.User
	err := s.pool.QueryRow(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Budget, &u.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT user_id, username, password_hash, budget, created_at
		FROM users
		WHERE user_id = $1
	`
	var u models.User
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Budget, &u.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) UpdateUserBudget(ctx context.Context, userID int64, budget decimal.Decimal) error {
	cmd, err := s.pool.Exec(ctx, `UPDATE users SET budget = $1 WHERE user_id = $2`, budget, userID)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
