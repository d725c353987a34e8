package services

import (
	"context"
	"slices"

	"spendlog-server/src/models"

	"golang.org/x/sync/errgroup"
)

const unknownCategory = "Unknown"

type ChartsService struct {
	txns       TransactionStore
	categories CategoryStore
}

func NewChartsService(txns TransactionStore, categories CategoryStore) *ChartsService {
	return &ChartsService{txns: txns, categories: categories}
}

// GetChartsData groups the actor's expenses by YYYY-MM in ascending month
// order and lists all of the actor's categories.
func (s *ChartsService) GetChartsData(ctx context.Context, actor *models.User) (models.ChartsData, error) {
	var (
		txns       []models.Transaction
		categories []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.txns.GetTransactionsByUser(gctx, actor.ID)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categories.GetCategoriesByUser(gctx, actor.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.ChartsData{}, err
	}

	if categories == nil {
		categories = []models.Category{}
	}
	return models.ChartsData{
		BarChartData: bucketByMonth(txns, categories),
		CategoryData: categories,
	}, nil
}

func bucketByMonth(txns []models.Transaction, categories []models.Category) []models.MonthBucket {
	names := categoryNames(categories)
	sorted := slices.Clone(txns)
	sortExpenses(sorted)

	buckets := map[string][]models.ExpenseView{}
	for _, t := range sorted {
		key := t.Date.Format("2006-01")
		buckets[key] = append(buckets[key], expenseView(t, names))
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	slices.Sort(months)

	out := make([]models.MonthBucket, 0, len(months))
	for _, m := range months {
		out = append(out, models.MonthBucket{Month: m, Expenses: buckets[m]})
	}
	return out
}
