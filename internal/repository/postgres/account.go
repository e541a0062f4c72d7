package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/laywill/laywill-api/internal/domain"
)

// AccountRepository implements domain.AccountRepository
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, workspace_id, name, type, initial_bal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		account.ID,
		account.WorkspaceID,
		account.Name,
		account.Type,
		account.InitialBal,
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, workspace_id, name, type, initial_bal, created_at
		FROM accounts
		WHERE id = $1 AND workspace_id = $2
	`

	var account domain.Account
	err := r.db.Pool.QueryRow(ctx, query, id, workspaceID).Scan(
		&account.ID,
		&account.WorkspaceID,
		&account.Name,
		&account.Type,
		&account.InitialBal,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

func (r *AccountRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Account, error) {
	query := `
		SELECT id, workspace_id, name, type, initial_bal, created_at
		FROM accounts
		WHERE workspace_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.WorkspaceID,
			&account.Name,
			&account.Type,
			&account.InitialBal,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (r *AccountRepository) ExistsForWorkspace(ctx context.Context, workspaceID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE workspace_id = $1)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, workspaceID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check accounts: %w", err)
	}

	return exists, nil
}
