package handlers

import (
	"net/http"

	"spendlog-server/src/services"
	"spendlog-server/src/util"
)

func GetSummary(summary *services.SummaryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}
		data, err := summary.GetSummary(r.Context(), user)
		if err != nil {
			internalError(w, r, "failed to build summary", user, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, data)
	}
}

func GetCharts(charts *services.ChartsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}
		data, err := charts.GetChartsData(r.Context(), user)
		if err != nil {
			internalError(w, r, "failed to build charts", user, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, data)
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, http.StatusOK, statusOK)
	}
}
