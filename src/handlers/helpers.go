package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"spendlog-server/src/middleware"
	"spendlog-server/src/models"
	"spendlog-server/src/services"
	"spendlog-server/src/util"

	"github.com/go-chi/chi/v5"
)

var statusOK = map[string]string{"status": "ok"}

// actingUser returns the user resolved by JWTAuthMiddleware. Routes that call
// it are always mounted behind that middleware.
func actingUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		util.WriteError(w, http.StatusUnauthorized, "not authenticated")
	}
	return u, ok
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.DebugContext(r.Context(), "failed to decode request body", "path", r.URL.Path, "error", err)
		util.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func urlID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		util.WriteError(w, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return id, true
}

// writeOutcome answers a guarded mutation. Denied and not-found writes are
// no-ops that still answer with the same success body.
func writeOutcome(w http.ResponseWriter, r *http.Request, outcome services.Outcome, err error, action string, user *models.User) {
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to "+action, "user_id", user.ID, "error", err)
		util.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if outcome == services.Applied {
		slog.InfoContext(r.Context(), action, "user_id", user.ID)
	}
	util.WriteJSON(w, http.StatusOK, statusOK)
}

func internalError(w http.ResponseWriter, r *http.Request, msg string, user *models.User, err error) {
	slog.ErrorContext(r.Context(), msg, "user_id", user.ID, "error", err)
	util.WriteError(w, http.StatusInternalServerError, "internal error")
}
