package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a money container inside a workspace
type Account struct {
	ID          uuid.UUID       `json:"id"`
	WorkspaceID uuid.UUID       `json:"workspace_id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	InitialBal  decimal.Decimal `json:"initial_bal"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Account type constants
const (
	AccountTypeWallet = "WALLET"
	AccountTypeBank   = "BANK"
)

// Default wallet account seeded during workspace bootstrap
const DefaultAccountName = "Carteira"

// AccountCreate represents account creation data
type AccountCreate struct {
	Name       string `json:"name" validate:"required,max=255"`
	Type       string `json:"type" validate:"omitempty,max=32"`
	InitialBal string `json:"initial_bal" validate:"omitempty"`
}

// AccountRepository defines the interface for account storage
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*Account, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Account, error)
	ExistsForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error)
}
