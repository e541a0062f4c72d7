package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Category labels expense/income transactions, unique per (workspace, name, type)
type Category struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category type constants
const (
	CategoryTypeExpense = "EXPENSE"
	CategoryTypeIncome  = "INCOME"
)

// DefaultExpenseCategories is the fixed set seeded into every workspace
var DefaultExpenseCategories = []string{
	"Lanches",
	"Mercado",
	"Transporte",
	"Serviços",
	"Lazer",
	"Saúde",
	"Educação",
	"Eletrônicos",
	"Vestuário",
	"Casa",
	"Outros",
}

// LegacyCategoryNames are pruned during default seeding when no transaction
// references them. INCOME categories are pruned under the same rule.
var LegacyCategoryNames = map[string]bool{
	"Alimentacao": true,
	"Moradia":     true,
	"Saude":       true,
	"Salario":     true,
	"Extras":      true,
}

// CategoryCreate represents category creation data
type CategoryCreate struct {
	Name string `json:"name" validate:"required,max=255"`
	Type string `json:"type" validate:"required,oneof=EXPENSE"`
	Seed bool   `json:"seed"`
}

// CategoryWithUsage pairs a category with its transaction count in a month
type CategoryWithUsage struct {
	Category
	UsageCount int `json:"usage_count"`
}

// CategoryRepository defines the interface for category storage
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, workspaceID, id uuid.UUID) (*Category, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Category, error)
	// CreateMany inserts the given categories, skipping rows that collide
	// with the (workspace, name, type) unique key. Returns rows inserted.
	CreateMany(ctx context.Context, categories []Category) (int64, error)
	DeleteByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) error
	UsageCounts(ctx context.Context, workspaceID uuid.UUID, from, to time.Time) (map[uuid.UUID]int, error)
}
