package services

import (
	"cmp"
	"slices"
	"strings"

	"spendlog-server/src/models"
)

// filterExpenses keeps the transactions matching every set field of f and
// returns them ordered by date, then id. The input slice is not modified.
func filterExpenses(txns []models.Transaction, f models.ExpenseFilter) []models.Transaction {
	var search string
	if f.Search != nil {
		search = strings.ToLower(*f.Search)
	}

	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if f.FromDate != nil && dayNumber(t.Date) < dayNumber(*f.FromDate) {
			continue
		}
		if f.ToDate != nil && dayNumber(t.Date) > dayNumber(*f.ToDate) {
			continue
		}
		if f.MinAmount != nil && t.Amount.LessThan(*f.MinAmount) {
			continue
		}
		if f.MaxAmount != nil && t.Amount.GreaterThan(*f.MaxAmount) {
			continue
		}
		if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Notes), search) {
			continue
		}
		out = append(out, t)
	}

	sortExpenses(out)
	return out
}

func sortExpenses(txns []models.Transaction) {
	slices.SortFunc(txns, func(a, b models.Transaction) int {
		if c := cmp.Compare(dayNumber(a.Date), dayNumber(b.Date)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
