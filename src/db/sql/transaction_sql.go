package db

import (
	"context"
	"time"

	"spendlog-server/src/models"
)

// CreateTransaction inserts t with a sequence-assigned id. ExpenseService
// always sets Date; a zero Date falls back to the database's current date.
func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, category_id, amount, transaction_date, notes)
		VALUES ($1, $2, $3, COALESCE($4::date, CURRENT_DATE), $5)
		RETURNING transaction_id, user_id, category_id, amount, transaction_date, notes
	`
	var date *time.Time
	if !t.Date.IsZero() {
		date = &t.Date
	}

	var out models.Transaction
	err := s.pool.QueryRow(ctx, query, t.UserID, t.CategoryID, t.Amount, date, t.Notes).
		Scan(&out.ID, &out.UserID, &out.CategoryID, &out.Amount, &out.Date, &out.Notes)
	if err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (s *Store) GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `
		SELECT transaction_id, user_id, category_id, amount, transaction_date, notes
		FROM transactions WHERE transaction_id = $1
	`
	var t models.Transaction
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Date, &t.Notes)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (s *Store) GetTransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	query := `
		SELECT transaction_id, user_id, category_id, amount, transaction_date, notes
		FROM transactions WHERE user_id = $1
		ORDER BY transaction_date, transaction_id
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Date, &t.Notes); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// UpdateTransaction rewrites category, amount and notes. The date is fixed
// at creation and is not part of the statement.
func (s *Store) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $1, amount = $2, notes = $3
		WHERE transaction_id = $4 AND user_id = $5
	`
	cmd, err := s.pool.Exec(ctx, query, t.CategoryID, t.Amount, t.Notes, t.ID, t.UserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
