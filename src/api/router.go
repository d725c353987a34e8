package api

import (
	"log/slog"

	"spendlog-server/src/auth"
	"spendlog-server/src/handlers"
	"spendlog-server/src/middleware"
	"spendlog-server/src/services"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps bundles what the router hands to handlers.
type Deps struct {
	Users      *services.UserService
	Categories *services.CategoryService
	Expenses   *services.ExpenseService
	Budgets    *services.BudgetService
	Summary    *services.SummaryService
	Charts     *services.ChartsService

	Tokens  *auth.Issuer
	Cookies handlers.CookieConfig
	Logger  *slog.Logger

	CORSAllowAll bool
	CORSOrigins  []string
	DemoMode     bool
}

func NewRouter(d Deps) *chi.Mux {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(d.CORSAllowAll, d.CORSOrigins))
	r.Use(middleware.DemoModeMiddleware(d.DemoMode))

	r.Get("/health", handlers.Health())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", handlers.Register(d.Users))
		r.Post("/login", handlers.Login(d.Users, d.Tokens, d.Cookies))
		r.Post("/logout", handlers.Logout(d.Cookies))
		r.Put("/refresh_token", handlers.RefreshToken(d.Users, d.Tokens, d.Cookies))
		r.Post("/refresh_token", handlers.RefreshToken(d.Users, d.Tokens, d.Cookies))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(d.Tokens, d.Users)).Group(func(r chi.Router) {
			// User
			r.Get("/me", handlers.Me())
			r.Post("/me", handlers.Me())
			r.Put("/update_user", handlers.UpdateUser(d.Users))

			// Expenses
			r.Post("/add_expense", handlers.AddExpense(d.Expenses))
			r.Put("/update_expense", handlers.UpdateExpense(d.Expenses))
			r.Delete("/delete_expense", handlers.DeleteExpense(d.Expenses))
			r.Get("/expenses", handlers.ListExpenses(d.Expenses, d.Categories))
			r.Get("/expenses/{expense_id}", handlers.GetExpense(d.Expenses, d.Categories))

			// Categories
			r.Post("/add_category", handlers.AddCategory(d.Categories))
			r.Put("/update_category", handlers.UpdateCategory(d.Categories))
			r.Delete("/delete_category", handlers.DeleteCategory(d.Categories))
			r.Get("/categories", handlers.ListCategories(d.Categories))

			// Budget
			r.Post("/budgets", handlers.CreateBudget(d.Budgets))
			r.Get("/budgets", handlers.GetBudgets(d.Budgets))
			r.Get("/budgets/{budget_id}", handlers.GetBudgetByID(d.Budgets))
			r.Put("/budgets/{budget_id}", handlers.UpdateBudget(d.Budgets))
			r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(d.Budgets))

			// Aggregates
			r.Get("/summary", handlers.GetSummary(d.Summary))
			r.Get("/charts", handlers.GetCharts(d.Charts))
		})
	})

	return r
}
