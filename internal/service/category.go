package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/laywill/laywill-api/internal/repository/postgres"
)

// CategoryService handles category operations inside a workspace
type CategoryService struct {
	categories domain.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categories domain.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create adds an expense category. With Seed set it instead backfills any
// missing default categories and reports how many were inserted.
func (s *CategoryService) Create(ctx context.Context, workspaceID uuid.UUID, req *domain.CategoryCreate) (*domain.Category, int64, error) {
	if req.Seed {
		inserted, err := s.SeedDefaults(ctx, workspaceID)
		return nil, inserted, err
	}

	category := &domain.Category{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Type:        domain.CategoryTypeExpense,
		CreatedAt:   time.Now(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, 0, domain.ErrCategoryExists
		}
		return nil, 0, err
	}

	return category, 1, nil
}

// SeedDefaults inserts any default expense categories the workspace is
// missing. Existing categories are never touched.
func (s *CategoryService) SeedDefaults(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	existing, err := s.categories.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return 0, err
	}

	present := make(map[string]bool, len(existing))
	for _, c := range existing {
		present[c.Name+"::"+c.Type] = true
	}

	var missing []domain.Category
	for _, name := range domain.DefaultExpenseCategories {
		if present[name+"::"+domain.CategoryTypeExpense] {
			continue
		}
		missing = append(missing, domain.Category{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			Name:        name,
			Type:        domain.CategoryTypeExpense,
			CreatedAt:   time.Now(),
		})
	}
	if len(missing) == 0 {
		return 0, nil
	}

	return s.categories.CreateMany(ctx, missing)
}

// ListWithUsage returns the workspace's categories with each one's
// transaction count inside the given month
func (s *CategoryService) ListWithUsage(ctx context.Context, workspaceID uuid.UUID, month string) ([]domain.CategoryWithUsage, error) {
	from, to, err := monthWindow(month)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	counts, err := s.categories.UsageCounts(ctx, workspaceID, from, to)
	if err != nil {
		return nil, err
	}

	result := make([]domain.CategoryWithUsage, 0, len(categories))
	for _, c := range categories {
		result = append(result, domain.CategoryWithUsage{
			Category:   c,
			UsageCount: counts[c.ID],
		})
	}

	return result, nil
}

// monthWindow parses a YYYY-MM month into its UTC [start, end) window.
// An empty month means the current month.
func monthWindow(month string) (time.Time, time.Time, error) {
	var from time.Time
	if month == "" {
		now := time.Now().UTC()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.ParseInLocation("2006-01", month, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidDate
		}
		from = parsed
	}
	return from, from.AddDate(0, 1, 0), nil
}
