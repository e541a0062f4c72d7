package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCategoryCreate(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()

	t.Run("creates expense category", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories)

		categories.On("Create", ctx, mock.MatchedBy(func(c *domain.Category) bool {
			return c.Name == "Pets" && c.Type == domain.CategoryTypeExpense && c.WorkspaceID == workspaceID
		})).Return(nil)

		category, _, err := svc.Create(ctx, workspaceID, &domain.CategoryCreate{Name: "Pets", Type: domain.CategoryTypeExpense})
		assert.NoError(t, err)
		assert.Equal(t, "Pets", category.Name)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories)

		categories.On("Create", ctx, mock.AnythingOfType("*domain.Category")).
			Return(&pgconn.PgError{Code: "23505"})

		_, _, err := svc.Create(ctx, workspaceID, &domain.CategoryCreate{Name: "Mercado", Type: domain.CategoryTypeExpense})
		assert.ErrorIs(t, err, domain.ErrCategoryExists)
	})

	t.Run("seed backfills missing defaults", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories)

		existing := []domain.Category{
			{ID: uuid.New(), WorkspaceID: workspaceID, Name: "Mercado", Type: domain.CategoryTypeExpense},
		}
		categories.On("ListByWorkspace", ctx, workspaceID).Return(existing, nil)

		var seeded []domain.Category
		categories.On("CreateMany", ctx, mock.AnythingOfType("[]domain.Category")).
			Run(func(args mock.Arguments) {
				seeded = args.Get(1).([]domain.Category)
			}).
			Return(int64(len(domain.DefaultExpenseCategories)-1), nil)

		_, count, err := svc.Create(ctx, workspaceID, &domain.CategoryCreate{Seed: true})
		assert.NoError(t, err)
		assert.Equal(t, int64(len(domain.DefaultExpenseCategories)-1), count)
		assert.Len(t, seeded, len(domain.DefaultExpenseCategories)-1)
		for _, c := range seeded {
			assert.NotEqual(t, "Mercado", c.Name)
		}
	})

	t.Run("seed with full set inserts nothing", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		svc := NewCategoryService(categories)

		categories.On("ListByWorkspace", ctx, workspaceID).Return(defaultCategoriesFor(workspaceID), nil)

		_, count, err := svc.Create(ctx, workspaceID, &domain.CategoryCreate{Seed: true})
		assert.NoError(t, err)
		assert.Zero(t, count)
		categories.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
	})
}

func TestCategoryListWithUsage(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	categories := new(MockCategoryRepository)
	svc := NewCategoryService(categories)

	mercado := domain.Category{ID: uuid.New(), WorkspaceID: workspaceID, Name: "Mercado", Type: domain.CategoryTypeExpense}
	lazer := domain.Category{ID: uuid.New(), WorkspaceID: workspaceID, Name: "Lazer", Type: domain.CategoryTypeExpense}

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	categories.On("ListByWorkspace", ctx, workspaceID).Return([]domain.Category{mercado, lazer}, nil)
	categories.On("UsageCounts", ctx, workspaceID, from, to).Return(map[uuid.UUID]int{mercado.ID: 7}, nil)

	got, err := svc.ListWithUsage(ctx, workspaceID, "2026-08")
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 7, got[0].UsageCount)
	assert.Zero(t, got[1].UsageCount)
}
