package services

import (
	"context"
	"log/slog"
	"time"

	"spendlog-server/src/models"

	"github.com/shopspring/decimal"
)

type ExpenseService struct {
	txns       TransactionStore
	categories CategoryStore
	now        func() time.Time
}

// NewExpenseService uses time.Now when now is nil. Pass the same clock as
// the SummaryService so undated expenses land in the month it reports.
func NewExpenseService(txns TransactionStore, categories CategoryStore, now func() time.Time) *ExpenseService {
	if now == nil {
		now = time.Now
	}
	return &ExpenseService{txns: txns, categories: categories, now: now}
}

// AddExpense records an expense against one of the actor's categories. A nil
// date means today by the service clock. The returned id is zero unless the
// outcome is Applied.
func (s *ExpenseService) AddExpense(ctx context.Context, actor *models.User, categoryID int64,
	amount decimal.Decimal, notes string, date *time.Time) (int64, Outcome, error) {
	_, outcome, err := loadOwned(ctx, actor, "category", categoryID, s.categories.GetCategoryByID)
	if err != nil || outcome != Applied {
		return 0, outcome, err
	}

	t := &models.Transaction{UserID: actor.ID, CategoryID: categoryID, Amount: amount, Notes: notes, Date: today(s.now())}
	if date != nil {
		t.Date = *date
	}
	created, err := s.txns.CreateTransaction(ctx, t)
	if err != nil {
		return 0, "", err
	}
	slog.InfoContext(ctx, "added expense", "user_id", actor.ID, "expense_id", created.ID)
	return created.ID, Applied, nil
}

// UpdateExpense changes category, amount and, when notes is non-nil, notes.
// The date and id never change.
func (s *ExpenseService) UpdateExpense(ctx context.Context, actor *models.User, id, categoryID int64,
	amount decimal.Decimal, notes *string) (Outcome, error) {
	t, outcome, err := loadOwned(ctx, actor, "expense", id, s.txns.GetTransactionByID)
	if err != nil || outcome != Applied {
		return outcome, err
	}
	if categoryID != t.CategoryID {
		_, outcome, err = loadOwned(ctx, actor, "category", categoryID, s.categories.GetCategoryByID)
		if err != nil || outcome != Applied {
			return outcome, err
		}
	}

	t.CategoryID = categoryID
	t.Amount = amount
	if notes != nil {
		t.Notes = *notes
	}
	return settle(s.txns.UpdateTransaction(ctx, t))
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, actor *models.User, id int64) (Outcome, error) {
	_, outcome, err := loadOwned(ctx, actor, "expense", id, s.txns.GetTransactionByID)
	if err != nil || outcome != Applied {
		return outcome, err
	}
	return settle(s.txns.DeleteTransaction(ctx, actor.ID, id))
}

func (s *ExpenseService) GetExpense(ctx context.Context, actor *models.User, id int64) (*models.Transaction, Outcome, error) {
	return loadOwned(ctx, actor, "expense", id, s.txns.GetTransactionByID)
}

// ListExpenses returns the actor's expenses matching filter, ordered by date
// then id. Range validation (from <= to, min <= max) is the caller's job.
func (s *ExpenseService) ListExpenses(ctx context.Context, actor *models.User, filter models.ExpenseFilter) ([]models.Transaction, error) {
	txns, err := s.txns.GetTransactionsByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return filterExpenses(txns, filter), nil
}
