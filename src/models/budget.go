package models

import "github.com/shopspring/decimal"

// Budget is a per-category spending limit. The monthly summary reads
// User.Budget instead; these rows are kept as owned records only.
type Budget struct {
	ID          int64
	UserID      int64
	CategoryID  int64
	LimitAmount decimal.Decimal
}

func (b Budget) OwnerID() int64 { return b.UserID }

type BudgetView struct {
	ID          int64   `json:"budget_id"`
	CategoryID  int64   `json:"category_id"`
	LimitAmount float64 `json:"limit_amount"`
}

func (b Budget) View() BudgetView {
	return BudgetView{ID: b.ID, CategoryID: b.CategoryID, LimitAmount: b.LimitAmount.InexactFloat64()}
}
