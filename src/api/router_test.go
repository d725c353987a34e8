package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"spendlog-server/src/auth"
	"spendlog-server/src/handlers"
	"spendlog-server/src/middleware"
	"spendlog-server/src/models"
	"spendlog-server/src/services"
	"spendlog-server/src/services/storetest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	suite.Suite
	store  *storetest.Store
	router *chi.Mux
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func newDeps(store *storetest.Store, demo bool) Deps {
	now := func() time.Time { return time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC) }
	return Deps{
		Users:      services.NewUserService(store, storetest.PlainHasher{}, nil),
		Categories: services.NewCategoryService(store),
		Expenses:   services.NewExpenseService(store, store, now),
		Budgets:    services.NewBudgetService(store, store),
		Summary:    services.NewSummaryService(store, store, now),
		Charts:     services.NewChartsService(store, store),

		Tokens:  auth.NewIssuer("test-secret", 30*time.Minute, 720*time.Hour),
		Cookies: handlers.CookieConfig{SameSite: http.SameSiteLaxMode},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),

		CORSAllowAll: true,
		DemoMode:     demo,
	}
}

func (s *RouterSuite) SetupTest() {
	s.store = storetest.New()
	s.router = NewRouter(newDeps(s.store, false))
}

func (s *RouterSuite) do(method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// signIn registers login and returns its auth cookies.
func (s *RouterSuite) signIn(login string, budget float64) []*http.Cookie {
	rec := s.do(http.MethodPost, "/api/v1/register", map[string]any{"login": login, "password": "Secret1!", "budget": budget}, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/login", map[string]any{"login": login, "password": "Secret1!"}, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 2)
	return cookies
}

func cookieNamed(cookies []*http.Cookie, name string) []*http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return []*http.Cookie{c}
		}
	}
	return nil
}

func decode[T any](s *RouterSuite, rec *httptest.ResponseRecorder) T {
	var v T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *RouterSuite) firstCategoryID(cookies []*http.Cookie) int64 {
	rec := s.do(http.MethodGet, "/api/v1/categories", nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	body := decode[struct {
		Categories []models.Category `json:"categories"`
	}](s, rec)
	s.Require().NotEmpty(body.Categories)
	return body.Categories[0].ID
}

func (s *RouterSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", nil, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *RouterSuite) TestRegisterValidation() {
	s.signIn("alice", 700)

	rec := s.do(http.MethodPost, "/api/v1/register", map[string]any{"login": "alice", "password": "Secret1!"}, nil)
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/register", map[string]any{"login": "carol", "password": "weak"}, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/register", map[string]any{"login": "xy", "password": "Secret1!"}, nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/login", map[string]any{"login": "alice", "password": "wrong"}, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterSuite) TestProtectedRoutesRequireToken() {
	for _, path := range []string{"/api/v1/me", "/api/v1/expenses", "/api/v1/summary", "/api/v1/charts"} {
		rec := s.do(http.MethodGet, path, nil, nil)
		s.Equal(http.StatusUnauthorized, rec.Code, path)
	}
}

func (s *RouterSuite) TestMeAndBudgetUpdate() {
	cookies := s.signIn("alice", 700)

	rec := s.do(http.MethodGet, "/api/v1/me", nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"login":"alice","budget":700}`, rec.Body.String())

	rec = s.do(http.MethodPut, "/api/v1/update_user", map[string]any{"budget": "812.50"}, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/v1/me", nil, cookies)
	s.JSONEq(`{"login":"alice","budget":812.5}`, rec.Body.String())

	rec = s.do(http.MethodPut, "/api/v1/update_user", map[string]any{"budget": -1}, cookies)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestExpenseFlow() {
	cookies := s.signIn("alice", 700)

	rec := s.do(http.MethodPost, "/api/v1/add_category", map[string]any{"category": "Food", "color": "#ff0000"}, cookies)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	food := s.firstCategoryID(cookies)

	for _, e := range []map[string]any{
		{"category_id": food, "amount": 100, "description": "groceries", "date": "2024-03-02"},
		{"category": food, "amount": "50", "description": "Coffee", "date": "2024-03-10"},
		{"category_id": food, "amount": 999, "date": "2024-01-15"},
	} {
		rec = s.do(http.MethodPost, "/api/v1/add_expense", e, cookies)
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/api/v1/expenses", nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	page := decode[models.ExpensePage](s, rec)
	s.Equal(3, page.TotalCount)
	s.Equal("2024-01-15", page.Expenses[0].Date)
	s.Equal("Food", page.Expenses[0].Category)

	rec = s.do(http.MethodGet, "/api/v1/expenses?from=2024-03-01&to=2024-03-31&search=coffee", nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	page = decode[models.ExpensePage](s, rec)
	s.Require().Len(page.Expenses, 1)
	s.Equal(50.0, page.Expenses[0].Amount)
	expenseID := page.Expenses[0].ID

	rec = s.do(http.MethodGet, "/api/v1/expenses?pageSize=2&page=2", nil, cookies)
	page = decode[models.ExpensePage](s, rec)
	s.Equal(2, page.TotalPages)
	s.Equal(2, page.CurrentPage)
	s.Len(page.Expenses, 1)

	rec = s.do(http.MethodPut, "/api/v1/update_expense", map[string]any{"expense_id": expenseID, "category_id": food, "amount": 60}, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/expenses/"+itoa(expenseID), nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	view := decode[models.ExpenseView](s, rec)
	s.Equal(60.0, view.Amount)
	s.Equal("2024-03-10", view.Date)
	s.Equal("Coffee", view.Description)

	rec = s.do(http.MethodGet, "/api/v1/summary", nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	summary := decode[models.Summary](s, rec)
	s.Equal(160.0, summary.MonthlyExpenses)
	s.Equal(540.0, summary.BudgetRemaining)

	rec = s.do(http.MethodGet, "/api/v1/charts", nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	charts := decode[models.ChartsData](s, rec)
	s.Require().Len(charts.BarChartData, 2)
	s.Equal("2024-01", charts.BarChartData[0].Month)
	s.Equal("2024-03", charts.BarChartData[1].Month)

	rec = s.do(http.MethodDelete, "/api/v1/delete_expense", map[string]any{"expense_id": expenseID}, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/v1/expenses/"+itoa(expenseID), nil, cookies)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestExpenseValidation() {
	cookies := s.signIn("alice", 700)

	tests := []struct {
		name string
		path string
	}{
		{"bad from", "/api/v1/expenses?from=03-01-2024"},
		{"bad to", "/api/v1/expenses?to=tomorrow"},
		{"from after to", "/api/v1/expenses?from=2024-03-02&to=2024-03-01"},
		{"bad min", "/api/v1/expenses?minAmount=ten"},
		{"min above max", "/api/v1/expenses?minAmount=10&maxAmount=5"},
		{"bad category", "/api/v1/expenses?category=food"},
		{"bad page", "/api/v1/expenses?page=0"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodGet, tt.path, nil, cookies)
			s.Equal(http.StatusBadRequest, rec.Code)
			s.Contains(rec.Body.String(), `"error"`)
		})
	}

	bad := []map[string]any{
		{"amount": 10},
		{"category_id": 1},
		{"category_id": 1, "amount": 0},
		{"category_id": 1, "amount": "abc"},
		{"category_id": "x", "amount": 1},
		{"category_id": 1, "amount": 1, "date": "2024-13-01"},
	}
	for _, body := range bad {
		rec := s.do(http.MethodPost, "/api/v1/add_expense", body, cookies)
		s.Equal(http.StatusBadRequest, rec.Code, body)
	}

	rec := s.do(http.MethodPost, "/api/v1/add_category", map[string]any{"category": " ", "color": "#fff"}, cookies)
	s.Equal(http.StatusBadRequest, rec.Code)
	rec = s.do(http.MethodPost, "/api/v1/add_category", map[string]any{"category": "Food", "color": "red"}, cookies)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestMoneyOutsideColumnRejected() {
	cookies := s.signIn("alice", 700)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/add_category", map[string]any{"category": "Food", "color": "#fff"}, cookies).Code)
	food := s.firstCategoryID(cookies)
	rec := s.do(http.MethodPost, "/api/v1/budgets", map[string]any{"category_id": food, "limit_amount": 100}, cookies)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	budgetID := decode[models.BudgetView](s, rec).ID

	before := s.store.Snapshot()
	for _, amount := range []string{"0.004", "10.005", "123456789012.5"} {
		s.Run(amount, func() {
			writes := []struct {
				method, path string
				body         map[string]any
			}{
				{http.MethodPost, "/api/v1/add_expense", map[string]any{"category_id": food, "amount": amount}},
				{http.MethodPost, "/api/v1/budgets", map[string]any{"category_id": food, "limit_amount": amount}},
				{http.MethodPut, "/api/v1/budgets/" + itoa(budgetID), map[string]any{"limit_amount": amount}},
				{http.MethodPut, "/api/v1/update_user", map[string]any{"budget": amount}},
				{http.MethodPost, "/api/v1/register", map[string]any{"login": "carol", "password": "Secret1!", "budget": amount}},
			}
			for _, w := range writes {
				rec := s.do(w.method, w.path, w.body, cookies)
				s.Equal(http.StatusBadRequest, rec.Code, w.path)
				s.Contains(rec.Body.String(), "at most 2 decimal places", w.path)
			}
		})
	}
	s.Equal(before, s.store.Snapshot())

	rec = s.do(http.MethodPost, "/api/v1/add_expense", map[string]any{"category_id": food, "amount": "9999999999.99", "date": "2024-03-01"}, cookies)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	page := decode[models.ExpensePage](s, s.do(http.MethodGet, "/api/v1/expenses", nil, cookies))
	s.Require().Len(page.Expenses, 1)
	s.Equal(9999999999.99, page.Expenses[0].Amount)
}

func (s *RouterSuite) TestOtherUserGetsSilentNoOp() {
	alice := s.signIn("alice", 700)
	bob := s.signIn("bob", 100)

	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/add_category", map[string]any{"category": "Food", "color": "#00ff00"}, alice).Code)
	food := s.firstCategoryID(alice)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/add_expense", map[string]any{"category_id": food, "amount": 10, "date": "2024-03-01"}, alice).Code)
	expenseID := decode[models.ExpensePage](s, s.do(http.MethodGet, "/api/v1/expenses", nil, alice)).Expenses[0].ID

	before := s.store.Snapshot()

	writes := []struct {
		method, path string
		body         map[string]any
	}{
		{http.MethodPut, "/api/v1/update_expense", map[string]any{"expense_id": expenseID, "category_id": food, "amount": 1}},
		{http.MethodDelete, "/api/v1/delete_expense", map[string]any{"expense_id": expenseID}},
		{http.MethodPut, "/api/v1/update_category", map[string]any{"category_id": food, "category": "Mine"}},
		{http.MethodDelete, "/api/v1/delete_category", map[string]any{"category_id": food}},
		{http.MethodPost, "/api/v1/add_expense", map[string]any{"category_id": food, "amount": 5}},
	}
	for _, w := range writes {
		rec := s.do(w.method, w.path, w.body, bob)
		s.Equal(http.StatusOK, rec.Code, w.path)
		s.JSONEq(`{"status":"ok"}`, rec.Body.String(), w.path)
	}
	s.Equal(before, s.store.Snapshot())

	rec := s.do(http.MethodGet, "/api/v1/expenses/"+itoa(expenseID), nil, bob)
	s.Equal(http.StatusNotFound, rec.Code)

	page := decode[models.ExpensePage](s, s.do(http.MethodGet, "/api/v1/expenses", nil, bob))
	s.Empty(page.Expenses)
	s.NotNil(page.Expenses)
}

func (s *RouterSuite) TestBudgetRoutes() {
	cookies := s.signIn("alice", 700)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/add_category", map[string]any{"category": "Rent", "color": "#abc"}, cookies).Code)
	rent := s.firstCategoryID(cookies)

	rec := s.do(http.MethodPost, "/api/v1/budgets", map[string]any{"category_id": rent, "limit_amount": 900}, cookies)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.BudgetView](s, rec)
	s.Equal(900.0, created.LimitAmount)

	rec = s.do(http.MethodPut, "/api/v1/budgets/"+itoa(created.ID), map[string]any{"limit_amount": "950.25"}, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/budgets/"+itoa(created.ID), nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(950.25, decode[models.BudgetView](s, rec).LimitAmount)

	rec = s.do(http.MethodGet, "/api/v1/budgets", nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(decode[[]models.BudgetView](s, rec), 1)

	rec = s.do(http.MethodGet, "/api/v1/budgets/abc", nil, cookies)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/budgets/"+itoa(created.ID), nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/v1/budgets/"+itoa(created.ID), nil, cookies)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestRefreshAndLogout() {
	cookies := s.signIn("alice", 700)

	rec := s.do(http.MethodPut, "/api/v1/refresh_token", nil, cookieNamed(cookies, middleware.RefreshCookie))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	body := decode[map[string]string](s, rec)
	s.NotEmpty(body["auth_token"])
	s.NotEmpty(body["refresh_token"])

	// an access token is not accepted as a refresh token
	access := cookieNamed(cookies, middleware.AccessCookie)[0]
	swapped := []*http.Cookie{{Name: middleware.RefreshCookie, Value: access.Value}}
	rec = s.do(http.MethodPut, "/api/v1/refresh_token", nil, swapped)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/refresh_token", nil, nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/logout", nil, cookies)
	s.Require().Equal(http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		s.Empty(c.Value)
		s.Negative(c.MaxAge)
	}
}

func (s *RouterSuite) TestDemoModeBlocksWrites() {
	s.router = NewRouter(newDeps(s.store, true))
	cookies := s.signIn("alice", 700)

	rec := s.do(http.MethodPost, "/api/v1/add_category", map[string]any{"category": "Food", "color": "#fff"}, cookies)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/categories", nil, cookies)
	s.Equal(http.StatusOK, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
