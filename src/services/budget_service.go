package services

import (
	"context"

	"spendlog-server/src/models"

	"github.com/shopspring/decimal"
)

// BudgetService manages per-category limits. GetSummary does not read them;
// the user's own budget is the only total.
type BudgetService struct {
	budgets    BudgetStore
	categories CategoryStore
}

func NewBudgetService(budgets BudgetStore, categories CategoryStore) *BudgetService {
	return &BudgetService{budgets: budgets, categories: categories}
}

func (s *BudgetService) AddBudget(ctx context.Context, actor *models.User, categoryID int64, limit decimal.Decimal) (*models.Budget, Outcome, error) {
	_, outcome, err := loadOwned(ctx, actor, "category", categoryID, s.categories.GetCategoryByID)
	if err != nil || outcome != Applied {
		return nil, outcome, err
	}

	b, err := s.budgets.CreateBudget(ctx, &models.Budget{UserID: actor.ID, CategoryID: categoryID, LimitAmount: limit})
	if err != nil {
		return nil, "", err
	}
	return b, Applied, nil
}

func (s *BudgetService) ListBudgets(ctx context.Context, actor *models.User) ([]models.Budget, error) {
	return s.budgets.GetBudgetsByUser(ctx, actor.ID)
}

func (s *BudgetService) GetBudget(ctx context.Context, actor *models.User, id int64) (*models.Budget, Outcome, error) {
	return loadOwned(ctx, actor, "budget", id, s.budgets.GetBudgetByID)
}

// UpdateBudget applies whichever of categoryID and limit are non-nil.
func (s *BudgetService) UpdateBudget(ctx context.Context, actor *models.User, id int64, categoryID *int64, limit *decimal.Decimal) (Outcome, error) {
	b, outcome, err := loadOwned(ctx, actor, "budget", id, s.budgets.GetBudgetByID)
	if err != nil || outcome != Applied {
		return outcome, err
	}

	if categoryID != nil && *categoryID != b.CategoryID {
		_, outcome, err = loadOwned(ctx, actor, "category", *categoryID, s.categories.GetCategoryByID)
		if err != nil || outcome != Applied {
			return outcome, err
		}
		b.CategoryID = *categoryID
	}
	if limit != nil {
		b.LimitAmount = *limit
	}
	return settle(s.budgets.UpdateBudget(ctx, b))
}

func (s *BudgetService) DeleteBudget(ctx context.Context, actor *models.User, id int64) (Outcome, error) {
	_, outcome, err := loadOwned(ctx, actor, "budget", id, s.budgets.GetBudgetByID)
	if err != nil || outcome != Applied {
		return outcome, err
	}
	return settle(s.budgets.DeleteBudget(ctx, actor.ID, id))
}
