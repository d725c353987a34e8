package services

import (
	"spendlog-server/src/models"
)

func categoryNames(categories []models.Category) map[int64]string {
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func expenseView(t models.Transaction, names map[int64]string) models.ExpenseView {
	name, ok := names[t.CategoryID]
	if !ok {
		name = unknownCategory
	}
	return models.ExpenseView{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		Category:    name,
		Amount:      t.Amount.InexactFloat64(),
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Notes,
	}
}

// ExpenseViews joins transactions with their category names, keeping order.
func ExpenseViews(txns []models.Transaction, categories []models.Category) []models.ExpenseView {
	names := categoryNames(categories)
	views := make([]models.ExpenseView, 0, len(txns))
	for _, t := range txns {
		views = append(views, expenseView(t, names))
	}
	return views
}

// Paginate slices views into one page. pageSize <= 0 returns everything as
// a single page; page is clamped to [1, totalPages].
func Paginate(views []models.ExpenseView, page, pageSize int) models.ExpensePage {
	if views == nil {
		views = []models.ExpenseView{}
	}
	total := len(views)
	if pageSize <= 0 {
		pageSize = max(total, 1)
	}
	totalPages := max((total+pageSize-1)/pageSize, 1)
	page = min(max(page, 1), totalPages)

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)
	return models.ExpensePage{
		Expenses:    views[start:end],
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
