package handler

import (
	"encoding/json"
	"net/http"

	"github.com/laywill/laywill-api/internal/api/middleware"
	"github.com/laywill/laywill-api/internal/api/response"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/laywill/laywill-api/internal/service"
)

// AccountHandler handles account endpoints
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List returns the workspace's accounts
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.InternalError(w, "workspace not resolved")
		return
	}

	accounts, err := h.accountService.List(r.Context(), workspaceID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, accounts)
}

// Create adds an account to the workspace
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.InternalError(w, "workspace not resolved")
		return
	}

	var input domain.AccountCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	account, err := h.accountService.Create(r.Context(), workspaceID, &input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.Created(w, account)
}
