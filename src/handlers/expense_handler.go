package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"spendlog-server/src/models"
	"spendlog-server/src/services"
	"spendlog-server/src/util"

	"github.com/shopspring/decimal"
)

func validAmount(w http.ResponseWriter, amount *decimal.Decimal) bool {
	if amount == nil {
		util.WriteError(w, http.StatusBadRequest, "missing amount")
		return false
	}
	if !amount.IsPositive() {
		util.WriteError(w, http.StatusBadRequest, "amount must be greater than zero")
		return false
	}
	return validMoney(w, "amount", *amount)
}

// validMoney rejects values the NUMERIC(12,2) columns would round or overflow.
func validMoney(w http.ResponseWriter, field string, d decimal.Decimal) bool {
	if !util.ValidateMoney(d) {
		util.WriteError(w, http.StatusBadRequest,
			field+" must have at most 2 decimal places and be no more than "+util.MaxMoney.StringFixed(2))
		return false
	}
	return true
}

func AddExpense(expenses *services.ExpenseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		var req models.AddExpenseRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		categoryID := req.CategoryID
		if categoryID == nil {
			categoryID = req.Category
		}
		if categoryID == nil {
			util.WriteError(w, http.StatusBadRequest, "Missing category_id")
			return
		}
		if !validAmount(w, req.Amount) {
			return
		}

		var date *time.Time
		if strings.TrimSpace(req.Date) != "" {
			d, err := util.ParseDate(req.Date)
			if err != nil {
				util.WriteError(w, http.StatusBadRequest, "Invalid date format. Expected YYYY-MM-DD")
				return
			}
			date = &d
		}

		_, outcome, err := expenses.AddExpense(r.Context(), user, *categoryID, *req.Amount, req.Description, date)
		writeOutcome(w, r, outcome, err, "add expense", user)
	}
}

func UpdateExpense(expenses *services.ExpenseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		var req models.UpdateExpenseRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.ExpenseID == nil || req.CategoryID == nil {
			util.WriteError(w, http.StatusBadRequest, "expense_id and category_id are required")
			return
		}
		if !validAmount(w, req.Amount) {
			return
		}

		outcome, err := expenses.UpdateExpense(r.Context(), user, *req.ExpenseID, *req.CategoryID, *req.Amount, req.Description)
		writeOutcome(w, r, outcome, err, "update expense", user)
	}
}

func DeleteExpense(expenses *services.ExpenseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		var req models.DeleteExpenseRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.ExpenseID == nil {
			util.WriteError(w, http.StatusBadRequest, "expense_id is required")
			return
		}

		outcome, err := expenses.DeleteExpense(r.Context(), user, *req.ExpenseID)
		writeOutcome(w, r, outcome, err, "delete expense", user)
	}
}

// ListExpenses filters and pages the actor's expenses. Category names are
// joined in for display.
func ListExpenses(expenses *services.ExpenseService, categories *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		filter, err := parseExpenseFilter(q)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		page, pageSize, err := parsePage(q)
		if err != nil {
			util.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		txns, err := expenses.ListExpenses(r.Context(), user, filter)
		if err != nil {
			internalError(w, r, "failed to list expenses", user, err)
			return
		}
		cats, err := categories.ListCategories(r.Context(), user)
		if err != nil {
			internalError(w, r, "failed to list categories", user, err)
			return
		}

		views := services.ExpenseViews(txns, cats)
		util.WriteJSON(w, http.StatusOK, services.Paginate(views, page, pageSize))
	}
}

func GetExpense(expenses *services.ExpenseService, categories *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}
		id, ok := urlID(w, r, "expense_id")
		if !ok {
			return
		}

		t, outcome, err := expenses.GetExpense(r.Context(), user, id)
		if err != nil {
			internalError(w, r, "failed to get expense", user, err)
			return
		}
		if outcome != services.Applied {
			slog.DebugContext(r.Context(), "expense not visible", "user_id", user.ID, "expense_id", id)
			util.WriteError(w, http.StatusNotFound, "expense not found")
			return
		}

		cats, err := categories.ListCategories(r.Context(), user)
		if err != nil {
			internalError(w, r, "failed to list categories", user, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, services.ExpenseViews([]models.Transaction{*t}, cats)[0])
	}
}
