package db

import (
	"context"

	"spendlog-server/src/models"
)

func (s *Store) CreateBudget(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category_id, limit_amount)
		VALUES ($1, $2, $3)
		RETURNING budget_id, user_id, category_id, limit_amount
	`
	var b models.Budget
	err := s.pool.QueryRow(ctx, query, budget.UserID, budget.CategoryID, budget.LimitAmount).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.LimitAmount)
	if err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (s *Store) GetBudgetByID(ctx context.Context, budgetID int64) (*models.Budget, error) {
	query := `
		SELECT budget_id, user_id, category_id, limit_amount
		FROM budgets WHERE budget_id = $1
	`
	var b models.Budget
	err := s.pool.QueryRow(ctx, query, budgetID).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.LimitAmount)
	if err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (s *Store) GetBudgetsByUser(ctx context.Context, userID int64) ([]models.Budget, error) {
	query := `
		SELECT budget_id, user_id, category_id, limit_amount
		FROM budgets WHERE user_id = $1
		ORDER BY budget_id
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.LimitAmount); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *Store) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	query := `
		UPDATE budgets
		SET category_id = $1, limit_amount = $2
		WHERE budget_id = $3 AND user_id = $4
	`
	cmd, err := s.pool.Exec(ctx, query, budget.CategoryID, budget.LimitAmount, budget.ID, budget.UserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, userID, budgetID int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
