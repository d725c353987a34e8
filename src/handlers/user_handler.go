package handlers

import (
	"net/http"

	"spendlog-server/src/models"
	"spendlog-server/src/services"
	"spendlog-server/src/util"
)

func UpdateUser(users *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		var req models.UpdateUserRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Budget == nil {
			util.WriteError(w, http.StatusBadRequest, "missing budget")
			return
		}
		if req.Budget.IsNegative() {
			util.WriteError(w, http.StatusBadRequest, "budget cannot be negative")
			return
		}
		if !validMoney(w, "budget", *req.Budget) {
			return
		}

		if err := users.UpdateBudget(r.Context(), user, *req.Budget); err != nil {
			internalError(w, r, "failed to update budget", user, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, statusOK)
	}
}
