package handler

import (
	"encoding/json"
	"net/http"

	"github.com/laywill/laywill-api/internal/api/middleware"
	"github.com/laywill/laywill-api/internal/api/response"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/laywill/laywill-api/internal/service"
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List returns the workspace's transactions for a YYYY-MM month
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.InternalError(w, "workspace not resolved")
		return
	}

	transactions, err := h.transactionService.ListMonth(r.Context(), workspaceID, r.URL.Query().Get("month"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, transactions)
}

// Create records a transaction
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.InternalError(w, "workspace not resolved")
		return
	}

	var input domain.TransactionCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	transaction, err := h.transactionService.Create(r.Context(), workspaceID, &input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.Created(w, transaction)
}

// Summary aggregates a month's income, expense and net totals
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.InternalError(w, "workspace not resolved")
		return
	}

	summary, err := h.transactionService.Summary(r.Context(), workspaceID, r.URL.Query().Get("month"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, summary)
}
