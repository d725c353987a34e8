package services

import (
	"context"

	"spendlog-server/src/models"
)

type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) AddCategory(ctx context.Context, actor *models.User, name, color string) (*models.Category, error) {
	return s.categories.CreateCategory(ctx, &models.Category{UserID: actor.ID, Name: name, Color: color})
}

// UpdateCategory renames the category and, when color is non-nil, recolors it.
func (s *CategoryService) UpdateCategory(ctx context.Context, actor *models.User, id int64, name string, color *string) (Outcome, error) {
	c, outcome, err := loadOwned(ctx, actor, "category", id, s.categories.GetCategoryByID)
	if err != nil || outcome != Applied {
		return outcome, err
	}

	c.Name = name
	if color != nil {
		c.Color = *color
	}
	return settle(s.categories.UpdateCategory(ctx, c))
}

// DeleteCategory removes the category only. Transactions that reference it
// are kept and report the category as unknown.
func (s *CategoryService) DeleteCategory(ctx context.Context, actor *models.User, id int64) (Outcome, error) {
	_, outcome, err := loadOwned(ctx, actor, "category", id, s.categories.GetCategoryByID)
	if err != nil || outcome != Applied {
		return outcome, err
	}
	return settle(s.categories.DeleteCategory(ctx, actor.ID, id))
}

func (s *CategoryService) ListCategories(ctx context.Context, actor *models.User) ([]models.Category, error) {
	return s.categories.GetCategoriesByUser(ctx, actor.ID)
}
