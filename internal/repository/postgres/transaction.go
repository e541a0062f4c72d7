package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/laywill/laywill-api/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository
type TransactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, workspace_id, type, amount, date, description, account_id, category_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		tx.ID,
		tx.WorkspaceID,
		tx.Type,
		tx.Amount,
		tx.Date,
		tx.Description,
		tx.AccountID,
		tx.CategoryID,
		tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func (r *TransactionRepository) ListByRange(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT id, workspace_id, type, amount, date, description, account_id, category_id, created_at
		FROM transactions
		WHERE workspace_id = $1 AND date >= $2 AND date < $3
		ORDER BY date DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.WorkspaceID,
			&tx.Type,
			&tx.Amount,
			&tx.Date,
			&tx.Description,
			&tx.AccountID,
			&tx.CategoryID,
			&tx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// UsedCategoryIDs reports which candidate categories have at least one
// referencing transaction. The pruning step never deletes a used category.
func (r *TransactionRepository) UsedCategoryIDs(ctx context.Context, workspaceID uuid.UUID, candidates []uuid.UUID) (map[uuid.UUID]bool, error) {
	used := make(map[uuid.UUID]bool)
	if len(candidates) == 0 {
		return used, nil
	}

	query := `
		SELECT DISTINCT category_id
		FROM transactions
		WHERE workspace_id = $1 AND category_id = ANY($2)
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to check category usage: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan used category: %w", err)
		}
		used[id] = true
	}

	return used, nil
}
