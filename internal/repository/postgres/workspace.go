package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/laywill/laywill-api/internal/domain"
)

// WorkspaceRepository implements domain.WorkspaceRepository
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		workspace.ID,
		workspace.Name,
		workspace.Currency,
		workspace.CreatedAt,
		workspace.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID
func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	query := `
		SELECT id, name, currency, created_at, updated_at
		FROM workspaces
		WHERE id = $1
	`

	var workspace domain.Workspace
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.Currency,
		&workspace.CreatedAt,
		&workspace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &workspace, nil
}

// LatestWorkspaceForUser returns the most recently created membership's
// workspace id, or uuid.Nil when the user has no membership yet.
func (r *WorkspaceRepository) LatestWorkspaceForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	query := `
		SELECT workspace_id
		FROM workspace_members
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var workspaceID uuid.UUID
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(&workspaceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to look up membership: %w", err)
	}

	return workspaceID, nil
}

// AddMember adds a member to a workspace. Duplicate (workspace, user) pairs
// surface as a unique violation; callers decide whether that is fatal.
func (r *WorkspaceRepository) AddMember(ctx context.Context, member *domain.WorkspaceMember) error {
	query := `
		INSERT INTO workspace_members (workspace_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		member.WorkspaceID,
		member.UserID,
		member.Role,
		member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// IsMember checks if a user is a member of a workspace
func (r *WorkspaceRepository) IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM workspace_members
			WHERE workspace_id = $1 AND user_id = $2
		)
	`

	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, workspaceID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return exists, nil
}

// BootstrapForUser calls the privileged server-side procedure that creates
// a workspace, its owner membership and default data atomically.
func (r *WorkspaceRepository) BootstrapForUser(ctx context.Context, name string, userID uuid.UUID) (uuid.UUID, error) {
	query := `SELECT bootstrap_workspace_for_user($1, $2)`

	var workspaceID uuid.UUID
	err := r.db.Pool.QueryRow(ctx, query, name, userID).Scan(&workspaceID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to bootstrap workspace: %w", err)
	}

	return workspaceID, nil
}
