package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a ledger entry. CategoryID is nil for income entries.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	WorkspaceID uuid.UUID       `json:"workspace_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description *string         `json:"description,omitempty"`
	AccountID   uuid.UUID       `json:"account_id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Transaction type constants
const (
	TransactionTypeIncome  = "INCOME"
	TransactionTypeExpense = "EXPENSE"
)

// TransactionCreate represents transaction creation data
type TransactionCreate struct {
	Type        string `json:"type" validate:"required,oneof=INCOME EXPENSE"`
	Amount      string `json:"amount" validate:"required"`
	Date        string `json:"date" validate:"omitempty"`
	Description string `json:"description" validate:"omitempty,max=500"`
	AccountID   string `json:"account_id" validate:"required,uuid"`
	CategoryID  string `json:"category_id" validate:"omitempty,uuid"`
}

// MonthlySummary aggregates a month of transactions
type MonthlySummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// TransactionRepository defines the interface for transaction storage
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	ListByRange(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]Transaction, error)
	// UsedCategoryIDs reports which of the candidate categories are
	// referenced by at least one transaction in the workspace.
	UsedCategoryIDs(ctx context.Context, workspaceID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]bool, error)
}
