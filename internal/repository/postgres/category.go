package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/laywill/laywill-api/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, workspace_id, name, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		category.ID,
		category.WorkspaceID,
		category.Name,
		category.Type,
		category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT id, workspace_id, name, type, created_at
		FROM categories
		WHERE id = $1 AND workspace_id = $2
	`

	var category domain.Category
	err := r.db.Pool.QueryRow(ctx, query, id, workspaceID).Scan(
		&category.ID,
		&category.WorkspaceID,
		&category.Name,
		&category.Type,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Category, error) {
	query := `
		SELECT id, workspace_id, name, type, created_at
		FROM categories
		WHERE workspace_id = $1
		ORDER BY type ASC, name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.WorkspaceID,
			&category.Name,
			&category.Type,
			&category.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, nil
}

// CreateMany bulk-inserts categories, skipping (workspace, name, type)
// duplicates. Returns the number of rows actually inserted.
func (r *CategoryRepository) CreateMany(ctx context.Context, categories []domain.Category) (int64, error) {
	if len(categories) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO categories (id, workspace_id, name, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (workspace_id, name, type) DO NOTHING
	`

	var inserted int64
	for _, category := range categories {
		tag, err := r.db.Pool.Exec(ctx, query,
			category.ID,
			category.WorkspaceID,
			category.Name,
			category.Type,
			category.CreatedAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert category %q: %w", category.Name, err)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

func (r *CategoryRepository) DeleteByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := `DELETE FROM categories WHERE workspace_id = $1 AND id = ANY($2)`

	_, err := r.db.Pool.Exec(ctx, query, workspaceID, ids)
	if err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}

	return nil
}

// UsageCounts returns per-category expense transaction counts inside a
// date window, for the month view of the category list.
func (r *CategoryRepository) UsageCounts(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (map[uuid.UUID]int, error) {
	query := `
		SELECT category_id, COUNT(*)
		FROM transactions
		WHERE workspace_id = $1
		  AND type = 'EXPENSE'
		  AND category_id IS NOT NULL
		  AND date >= $2 AND date < $3
		GROUP BY category_id
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count category usage: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan usage count: %w", err)
		}
		counts[id] = count
	}

	return counts, nil
}
