package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountService handles account operations inside a workspace
type AccountService struct {
	accounts domain.AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accounts domain.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// Create adds an account to the workspace
func (s *AccountService) Create(ctx context.Context, workspaceID uuid.UUID, req *domain.AccountCreate) (*domain.Account, error) {
	accountType := req.Type
	if accountType == "" {
		accountType = domain.AccountTypeBank
	}
	if accountType != domain.AccountTypeWallet && accountType != domain.AccountTypeBank {
		return nil, domain.ErrInvalidAccountType
	}

	initial := decimal.Zero
	if req.InitialBal != "" {
		parsed, err := decimal.NewFromString(req.InitialBal)
		if err != nil {
			return nil, domain.ErrInvalidAmount
		}
		initial = parsed
	}

	account := &domain.Account{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Type:        accountType,
		InitialBal:  initial,
		CreatedAt:   time.Now(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// List returns the workspace's accounts
func (s *AccountService) List(ctx context.Context, workspaceID uuid.UUID) ([]domain.Account, error) {
	return s.accounts.ListByWorkspace(ctx, workspaceID)
}
