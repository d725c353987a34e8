package models

// Summary is the current-month spending overview. Values are computed with
// decimals and converted to float only here, at the transport boundary.
type Summary struct {
	TotalBalance    float64 `json:"totalBalance"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	BudgetRemaining float64 `json:"budgetRemaining"`
	PercentageUsed  float64 `json:"percentageUsed"`
}
