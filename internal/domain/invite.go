package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WorkspaceInvite is a single-use, time-boxed credential granting membership.
// Usable only while UsedAt is nil and the expiry has not passed.
type WorkspaceInvite struct {
	ID          uuid.UUID  `json:"id"`
	Token       string     `json:"token"`
	WorkspaceID uuid.UUID  `json:"workspace_id"`
	Role        string     `json:"role"`
	Email       *string    `json:"email,omitempty"`
	ExpiresAt   time.Time  `json:"expires_at"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// InviteCreate represents invite issuance data
type InviteCreate struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// InviteAccept represents invite redemption data
type InviteAccept struct {
	Token string `json:"token" validate:"required"`
}

// InviteRepository defines the interface for invite storage
type InviteRepository interface {
	Create(ctx context.Context, invite *WorkspaceInvite) error
	GetByToken(ctx context.Context, token string) (*WorkspaceInvite, error)
	// Redeem inserts the membership and marks the invite used in a single
	// transaction so the invite stays redeemable if either write fails.
	Redeem(ctx context.Context, inviteID uuid.UUID, member *WorkspaceMember) error
	MarkUsed(ctx context.Context, inviteID uuid.UUID, at time.Time) error
}
