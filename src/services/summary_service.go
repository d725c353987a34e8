package services

import (
	"context"
	"time"

	"spendlog-server/src/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type SummaryService struct {
	users UserStore
	txns  TransactionStore
	now   func() time.Time
}

// NewSummaryService uses time.Now when now is nil.
func NewSummaryService(users UserStore, txns TransactionStore, now func() time.Time) *SummaryService {
	if now == nil {
		now = time.Now
	}
	return &SummaryService{users: users, txns: txns, now: now}
}

// GetSummary compares the actor's spending in the current calendar month to
// their budget. With a zero or negative budget the percentage is 0.
// The budget is read from the store, not from the resolved actor, which may
// come from the identity cache.
func (s *SummaryService) GetSummary(ctx context.Context, actor *models.User) (models.Summary, error) {
	user, err := s.users.GetUserByID(ctx, actor.ID)
	if err != nil {
		return models.Summary{}, err
	}
	txns, err := s.txns.GetTransactionsByUser(ctx, actor.ID)
	if err != nil {
		return models.Summary{}, err
	}

	first, last := MonthRange(s.now())
	monthly := decimal.Zero
	for _, t := range filterExpenses(txns, models.ExpenseFilter{FromDate: &first, ToDate: &last}) {
		monthly = monthly.Add(t.Amount)
	}

	total := user.Budget
	percentage := decimal.Zero
	if total.IsPositive() {
		percentage = monthly.Div(total).Mul(hundred)
	}

	return models.Summary{
		TotalBalance:    total.InexactFloat64(),
		MonthlyExpenses: monthly.InexactFloat64(),
		BudgetRemaining: total.Sub(monthly).InexactFloat64(),
		PercentageUsed:  percentage.InexactFloat64(),
	}, nil
}
