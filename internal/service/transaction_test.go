package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type transactionFixture struct {
	transactions *MockTransactionRepository
	accounts     *MockAccountRepository
	categories   *MockCategoryRepository
	svc          *TransactionService
}

func newTransactionFixture() *transactionFixture {
	f := &transactionFixture{
		transactions: new(MockTransactionRepository),
		accounts:     new(MockAccountRepository),
		categories:   new(MockCategoryRepository),
	}
	f.svc = NewTransactionService(f.transactions, f.accounts, f.categories)
	return f
}

func TestTransactionCreate(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	account := &domain.Account{ID: uuid.New(), WorkspaceID: workspaceID, Name: "Carteira", Type: domain.AccountTypeWallet}

	t.Run("expense with category", func(t *testing.T) {
		f := newTransactionFixture()
		category := &domain.Category{ID: uuid.New(), WorkspaceID: workspaceID, Name: "Mercado", Type: domain.CategoryTypeExpense}

		f.accounts.On("GetByID", ctx, workspaceID, account.ID).Return(account, nil)
		f.categories.On("GetByID", ctx, workspaceID, category.ID).Return(category, nil)
		f.transactions.On("Create", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil)

		tx, err := f.svc.Create(ctx, workspaceID, &domain.TransactionCreate{
			Type:       domain.TransactionTypeExpense,
			Amount:     "42.50",
			Date:       "2026-08-15",
			AccountID:  account.ID.String(),
			CategoryID: category.ID.String(),
		})
		assert.NoError(t, err)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("42.50")))
		assert.Equal(t, category.ID, *tx.CategoryID)
		assert.Equal(t, 2026, tx.Date.Year())
	})

	t.Run("income carries no category", func(t *testing.T) {
		f := newTransactionFixture()
		f.accounts.On("GetByID", ctx, workspaceID, account.ID).Return(account, nil)
		f.transactions.On("Create", ctx, mock.AnythingOfType("*domain.Transaction")).Return(nil)

		tx, err := f.svc.Create(ctx, workspaceID, &domain.TransactionCreate{
			Type:      domain.TransactionTypeIncome,
			Amount:    "1000",
			AccountID: account.ID.String(),
		})
		assert.NoError(t, err)
		assert.Nil(t, tx.CategoryID)
	})

	t.Run("expense without category rejected", func(t *testing.T) {
		f := newTransactionFixture()
		f.accounts.On("GetByID", ctx, workspaceID, account.ID).Return(account, nil)

		_, err := f.svc.Create(ctx, workspaceID, &domain.TransactionCreate{
			Type:      domain.TransactionTypeExpense,
			Amount:    "10.50",
			AccountID: account.ID.String(),
		})
		assert.ErrorIs(t, err, domain.ErrCategoryRequired)
		f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("income with category rejected", func(t *testing.T) {
		f := newTransactionFixture()
		f.accounts.On("GetByID", ctx, workspaceID, account.ID).Return(account, nil)

		_, err := f.svc.Create(ctx, workspaceID, &domain.TransactionCreate{
			Type:       domain.TransactionTypeIncome,
			Amount:     "1000",
			AccountID:  account.ID.String(),
			CategoryID: uuid.New().String(),
		})
		assert.ErrorIs(t, err, domain.ErrCategoryTypeMismatch)
	})

	t.Run("invalid amount", func(t *testing.T) {
		f := newTransactionFixture()

		for _, amount := range []string{"abc", "-5", "0"} {
			_, err := f.svc.Create(ctx, workspaceID, &domain.TransactionCreate{
				Type:      domain.TransactionTypeExpense,
				Amount:    amount,
				AccountID: account.ID.String(),
			})
			assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %q", amount)
		}
	})

	t.Run("account outside workspace", func(t *testing.T) {
		f := newTransactionFixture()
		otherAccount := uuid.New()
		f.accounts.On("GetByID", ctx, workspaceID, otherAccount).Return(nil, nil)

		_, err := f.svc.Create(ctx, workspaceID, &domain.TransactionCreate{
			Type:      domain.TransactionTypeExpense,
			Amount:    "10",
			AccountID: otherAccount.String(),
		})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("category outside workspace", func(t *testing.T) {
		f := newTransactionFixture()
		otherCategory := uuid.New()
		f.accounts.On("GetByID", ctx, workspaceID, account.ID).Return(account, nil)
		f.categories.On("GetByID", ctx, workspaceID, otherCategory).Return(nil, nil)

		_, err := f.svc.Create(ctx, workspaceID, &domain.TransactionCreate{
			Type:       domain.TransactionTypeExpense,
			Amount:     "10",
			AccountID:  account.ID.String(),
			CategoryID: otherCategory.String(),
		})
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})
}

func TestTransactionSummary(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	f := newTransactionFixture()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	f.transactions.On("ListByRange", ctx, workspaceID, from, to).Return([]domain.Transaction{
		{Type: domain.TransactionTypeIncome, Amount: decimal.RequireFromString("3000")},
		{Type: domain.TransactionTypeExpense, Amount: decimal.RequireFromString("120.30")},
		{Type: domain.TransactionTypeExpense, Amount: decimal.RequireFromString("79.70")},
	}, nil)

	summary, err := f.svc.Summary(ctx, workspaceID, "2026-08")
	assert.NoError(t, err)
	assert.True(t, summary.Income.Equal(decimal.RequireFromString("3000")))
	assert.True(t, summary.Expense.Equal(decimal.RequireFromString("200")))
	assert.True(t, summary.Net.Equal(decimal.RequireFromString("2800")))
}

func TestMonthWindow(t *testing.T) {
	from, to, err := monthWindow("2026-02")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), to)

	_, _, err = monthWindow("02-2026")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	from, to, err = monthWindow("")
	assert.NoError(t, err)
	assert.Equal(t, 1, from.Day())
	assert.True(t, to.After(from))
}
