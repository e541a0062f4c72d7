package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Workspace is the shared tenant for a couple's finances
type Workspace struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkspaceMember represents workspace membership
type WorkspaceMember struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Role constants
const (
	RoleOwner  = "OWNER"
	RoleEditor = "EDITOR"
)

// DefaultCurrency applied to bootstrapped workspaces
const DefaultCurrency = "BRL"

// WorkspaceRepository defines the interface for workspace storage
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	// LatestWorkspaceForUser returns the workspace id of the user's most
	// recently created membership, or uuid.Nil when the user has none yet.
	LatestWorkspaceForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	AddMember(ctx context.Context, member *WorkspaceMember) error
	IsMember(ctx context.Context, workspaceID, userID uuid.UUID) (bool, error)
	// BootstrapForUser invokes the privileged server-side procedure that
	// creates workspace, owner membership and defaults in one statement.
	BootstrapForUser(ctx context.Context, name string, userID uuid.UUID) (uuid.UUID, error)
}
