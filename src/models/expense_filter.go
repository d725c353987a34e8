package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseFilter narrows a user's expense listing. Nil fields are not applied;
// every set field must match (logical AND). Range bounds are inclusive.
type ExpenseFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	CategoryID *int64
	Search     *string
}

func (f ExpenseFilter) IsEmpty() bool {
	return f.FromDate == nil && f.ToDate == nil &&
		f.MinAmount == nil && f.MaxAmount == nil &&
		f.CategoryID == nil && f.Search == nil
}
