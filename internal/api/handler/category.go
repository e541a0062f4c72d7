package handler

import (
	"encoding/json"
	"net/http"

	"github.com/laywill/laywill-api/internal/api/middleware"
	"github.com/laywill/laywill-api/internal/api/response"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/laywill/laywill-api/internal/service"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List returns the workspace's categories with per-month usage counts.
// The month query parameter is YYYY-MM and defaults to the current month.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.InternalError(w, "workspace not resolved")
		return
	}

	categories, err := h.categoryService.ListWithUsage(r.Context(), workspaceID, r.URL.Query().Get("month"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, categories)
}

// Create adds an expense category, or backfills the default set when the
// request carries seed=true
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.InternalError(w, "workspace not resolved")
		return
	}

	var input domain.CategoryCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if !input.Seed {
		if err := validate.Struct(input); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
	}

	category, seeded, err := h.categoryService.Create(r.Context(), workspaceID, &input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if input.Seed {
		response.OK(w, map[string]any{
			"seeded": seeded,
		})
		return
	}

	response.Created(w, category)
}
