package models

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Login    string          `json:"login"`
	Password string          `json:"password"`
	Budget   decimal.Decimal `json:"budget"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Budget *decimal.Decimal `json:"budget"`
}

// AddExpenseRequest accepts the category under either key; older clients
// send "category".
type AddExpenseRequest struct {
	CategoryID  *int64           `json:"category_id"`
	Category    *int64           `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
}

type UpdateExpenseRequest struct {
	ExpenseID   *int64           `json:"expense_id"`
	CategoryID  *int64           `json:"category_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

type DeleteExpenseRequest struct {
	ExpenseID *int64 `json:"expense_id"`
}

type AddCategoryRequest struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

type UpdateCategoryRequest struct {
	CategoryID *int64  `json:"category_id"`
	Category   string  `json:"category"`
	Color      *string `json:"color"`
}

type DeleteCategoryRequest struct {
	CategoryID *int64 `json:"category_id"`
}

type BudgetRequest struct {
	CategoryID  *int64           `json:"category_id"`
	LimitAmount *decimal.Decimal `json:"limit_amount"`
}
