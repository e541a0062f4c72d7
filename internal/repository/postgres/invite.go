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

// InviteRepository implements domain.InviteRepository
type InviteRepository struct {
	db *DB
}

// NewInviteRepository creates a new invite repository
func NewInviteRepository(db *DB) *InviteRepository {
	return &InviteRepository{db: db}
}

// Create persists a new invite
func (r *InviteRepository) Create(ctx context.Context, invite *domain.WorkspaceInvite) error {
	query := `
		INSERT INTO workspace_invites (id, token, workspace_id, role, email, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		invite.ID,
		invite.Token,
		invite.WorkspaceID,
		invite.Role,
		invite.Email,
		invite.ExpiresAt,
		invite.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}

	return nil
}

// GetByToken retrieves an invite by exact token match
func (r *InviteRepository) GetByToken(ctx context.Context, token string) (*domain.WorkspaceInvite, error) {
	query := `
		SELECT id, token, workspace_id, role, email, expires_at, used_at, created_at
		FROM workspace_invites
		WHERE token = $1
	`

	var invite domain.WorkspaceInvite
	err := r.db.Pool.QueryRow(ctx, query, token).Scan(
		&invite.ID,
		&invite.Token,
		&invite.WorkspaceID,
		&invite.Role,
		&invite.Email,
		&invite.ExpiresAt,
		&invite.UsedAt,
		&invite.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return &invite, nil
}

// Redeem inserts the membership and consumes the invite in one transaction.
// If either write fails the invite stays redeemable.
func (r *InviteRepository) Redeem(ctx context.Context, inviteID uuid.UUID, member *domain.WorkspaceMember) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin redeem: %w", err)
	}
	defer tx.Rollback(ctx)

	memberQuery := `
		INSERT INTO workspace_members (workspace_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, memberQuery,
		member.WorkspaceID,
		member.UserID,
		member.Role,
		member.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	usedQuery := `UPDATE workspace_invites SET used_at = $2 WHERE id = $1`
	if _, err := tx.Exec(ctx, usedQuery, inviteID, member.CreatedAt); err != nil {
		return fmt.Errorf("failed to consume invite: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit redeem: %w", err)
	}

	return nil
}

// MarkUsed consumes an invite without touching membership, the path taken
// when the redeemer is already a member.
func (r *InviteRepository) MarkUsed(ctx context.Context, inviteID uuid.UUID, at time.Time) error {
	query := `UPDATE workspace_invites SET used_at = $2 WHERE id = $1`

	_, err := r.db.Pool.Exec(ctx, query, inviteID, at)
	if err != nil {
		return fmt.Errorf("failed to mark invite used: %w", err)
	}

	return nil
}
