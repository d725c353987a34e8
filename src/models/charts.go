package models

// ExpenseView is the presentation form of a Transaction joined with its
// category name.
type ExpenseView struct {
	ID          int64   `json:"expense_id"`
	CategoryID  int64   `json:"category_id,omitempty"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

type MonthBucket struct {
	Month    string        `json:"month"`
	Expenses []ExpenseView `json:"expenses"`
}

type ChartsData struct {
	BarChartData []MonthBucket `json:"barChartData"`
	CategoryData []Category    `json:"categoryData"`
}

type ExpensePage struct {
	Expenses    []ExpenseView `json:"expenses"`
	TotalCount  int           `json:"totalCount"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}
