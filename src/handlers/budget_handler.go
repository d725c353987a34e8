package handlers

import (
	"net/http"

	"spendlog-server/src/models"
	"spendlog-server/src/services"
	"spendlog-server/src/util"
)

func CreateBudget(budgets *services.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		var req models.BudgetRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.CategoryID == nil || req.LimitAmount == nil {
			util.WriteError(w, http.StatusBadRequest, "category_id and limit_amount are required")
			return
		}
		if !req.LimitAmount.IsPositive() {
			util.WriteError(w, http.StatusBadRequest, "limit_amount must be greater than zero")
			return
		}
		if !validMoney(w, "limit_amount", *req.LimitAmount) {
			return
		}

		created, outcome, err := budgets.AddBudget(r.Context(), user, *req.CategoryID, *req.LimitAmount)
		if err != nil || outcome != services.Applied {
			writeOutcome(w, r, outcome, err, "create budget", user)
			return
		}
		util.WriteJSON(w, http.StatusCreated, created.View())
	}
}

func GetBudgets(budgets *services.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		list, err := budgets.ListBudgets(r.Context(), user)
		if err != nil {
			internalError(w, r, "failed to list budgets", user, err)
			return
		}
		views := make([]models.BudgetView, 0, len(list))
		for _, b := range list {
			views = append(views, b.View())
		}
		util.WriteJSON(w, http.StatusOK, views)
	}
}

func GetBudgetByID(budgets *services.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}
		id, ok := urlID(w, r, "budget_id")
		if !ok {
			return
		}

		b, outcome, err := budgets.GetBudget(r.Context(), user, id)
		if err != nil {
			internalError(w, r, "failed to get budget", user, err)
			return
		}
		if outcome != services.Applied {
			util.WriteError(w, http.StatusNotFound, "budget not found")
			return
		}
		util.WriteJSON(w, http.StatusOK, b.View())
	}
}

func UpdateBudget(budgets *services.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}
		id, ok := urlID(w, r, "budget_id")
		if !ok {
			return
		}

		var req models.BudgetRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.LimitAmount != nil {
			if !req.LimitAmount.IsPositive() {
				util.WriteError(w, http.StatusBadRequest, "limit_amount must be greater than zero")
				return
			}
			if !validMoney(w, "limit_amount", *req.LimitAmount) {
				return
			}
		}

		outcome, err := budgets.UpdateBudget(r.Context(), user, id, req.CategoryID, req.LimitAmount)
		writeOutcome(w, r, outcome, err, "update budget", user)
	}
}

func DeleteBudget(budgets *services.BudgetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}
		id, ok := urlID(w, r, "budget_id")
		if !ok {
			return
		}

		outcome, err := budgets.DeleteBudget(r.Context(), user, id)
		writeOutcome(w, r, outcome, err, "delete budget", user)
	}
}
