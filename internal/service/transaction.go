package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionService handles ledger entries inside a workspace
type TransactionService struct {
	transactions domain.TransactionRepository
	accounts     domain.AccountRepository
	categories   domain.CategoryRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactions domain.TransactionRepository,
	accounts domain.AccountRepository,
	categories domain.CategoryRepository,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		accounts:     accounts,
		categories:   categories,
	}
}

// Create records a transaction. The account must belong to the workspace;
// expenses require a category that belongs to the workspace and is an
// expense category, and income entries carry no category.
func (s *TransactionService) Create(ctx context.Context, workspaceID uuid.UUID, req *domain.TransactionCreate) (*domain.Transaction, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.Sign() <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	account, err := s.accounts.GetByID(ctx, workspaceID, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	if req.Type == domain.TransactionTypeExpense && req.CategoryID == "" {
		return nil, domain.ErrCategoryRequired
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		if req.Type != domain.TransactionTypeExpense {
			return nil, domain.ErrCategoryTypeMismatch
		}
		parsed, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, domain.ErrCategoryNotFound
		}
		category, err := s.categories.GetByID(ctx, workspaceID, parsed)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrCategoryNotFound
		}
		if category.Type != domain.CategoryTypeExpense {
			return nil, domain.ErrCategoryTypeMismatch
		}
		categoryID = &parsed
	}

	tx := &domain.Transaction{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Type:        req.Type,
		Amount:      amount,
		Date:        date,
		AccountID:   accountID,
		CategoryID:  categoryID,
		CreatedAt:   time.Now(),
	}
	if req.Description != "" {
		desc := req.Description
		tx.Description = &desc
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// ListMonth returns the workspace's transactions for a YYYY-MM month
func (s *TransactionService) ListMonth(ctx context.Context, workspaceID uuid.UUID, month string) ([]domain.Transaction, error) {
	from, to, err := monthWindow(month)
	if err != nil {
		return nil, err
	}
	return s.transactions.ListByRange(ctx, workspaceID, from, to)
}

// Summary aggregates a month's income, expense and net totals
func (s *TransactionService) Summary(ctx context.Context, workspaceID uuid.UUID, month string) (*domain.MonthlySummary, error) {
	transactions, err := s.ListMonth(ctx, workspaceID, month)
	if err != nil {
		return nil, err
	}

	summary := &domain.MonthlySummary{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			summary.Income = summary.Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			summary.Expense = summary.Expense.Add(tx.Amount)
		}
	}
	summary.Net = summary.Income.Sub(summary.Expense)

	return summary, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, domain.ErrInvalidDate
}
