package handlers

import (
	"net/http"
	"strings"

	"spendlog-server/src/models"
	"spendlog-server/src/services"
	"spendlog-server/src/util"
)

const defaultColor = "#000000"

func validCategory(w http.ResponseWriter, name string, color *string) bool {
	if !util.ValidateCategoryName(name) {
		util.WriteError(w, http.StatusBadRequest, "category name must be 1 to 50 characters")
		return false
	}
	if color != nil && !util.ValidateColor(*color) {
		util.WriteError(w, http.StatusBadRequest, "color must be #RGB or #RRGGBB")
		return false
	}
	return true
}

func AddCategory(categories *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		var req models.AddCategoryRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Category = strings.TrimSpace(req.Category)
		if req.Color == "" {
			req.Color = defaultColor
		}
		if !validCategory(w, req.Category, &req.Color) {
			return
		}

		if _, err := categories.AddCategory(r.Context(), user, req.Category, req.Color); err != nil {
			internalError(w, r, "failed to add category", user, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, statusOK)
	}
}

func UpdateCategory(categories *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		var req models.UpdateCategoryRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.CategoryID == nil {
			util.WriteError(w, http.StatusBadRequest, "category_id is required")
			return
		}
		req.Category = strings.TrimSpace(req.Category)
		if !validCategory(w, req.Category, req.Color) {
			return
		}

		outcome, err := categories.UpdateCategory(r.Context(), user, *req.CategoryID, req.Category, req.Color)
		writeOutcome(w, r, outcome, err, "update category", user)
	}
}

func DeleteCategory(categories *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		var req models.DeleteCategoryRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.CategoryID == nil {
			util.WriteError(w, http.StatusBadRequest, "category_id is required")
			return
		}

		outcome, err := categories.DeleteCategory(r.Context(), user, *req.CategoryID)
		writeOutcome(w, r, outcome, err, "delete category", user)
	}
}

func ListCategories(categories *services.CategoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := actingUser(w, r)
		if !ok {
			return
		}

		cats, err := categories.ListCategories(r.Context(), user)
		if err != nil {
			internalError(w, r, "failed to list categories", user, err)
			return
		}
		util.WriteJSON(w, http.StatusOK, map[string]any{"categories": cats})
	}
}
