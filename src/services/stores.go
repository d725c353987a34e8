package services

import (
	"context"

	"spendlog-server/src/models"

	"github.com/shopspring/decimal"
)

// The store interfaces below are satisfied by *db.Store. List methods are
// owner-scoped; GetXByID methods are not and go through authorize.

type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string, budget decimal.Decimal) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserBudget(ctx context.Context, userID int64, budget decimal.Decimal) error
}

type CategoryStore interface {
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	GetCategoriesByUser(ctx context.Context, userID int64) ([]models.Category, error)
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, userID, categoryID int64) error
}

type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error)
	GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error)
	GetTransactionsByUser(ctx context.Context, userID int64) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID int64) error
}

type BudgetStore interface {
	CreateBudget(ctx context.Context, b *models.Budget) (*models.Budget, error)
	GetBudgetByID(ctx context.Context, budgetID int64) (*models.Budget, error)
	GetBudgetsByUser(ctx context.Context, userID int64) ([]models.Budget, error)
	UpdateBudget(ctx context.Context, b *models.Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID int64) error
}
