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

// VerificationRepository implements domain.VerificationRepository
type VerificationRepository struct {
	db *DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) CreateEmailCode(ctx context.Context, code *domain.EmailVerificationCode) error {
	query := `
		INSERT INTO email_verification_codes (id, user_id, code_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		code.ID,
		code.UserID,
		code.CodeHash,
		code.ExpiresAt,
		code.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create verification code: %w", err)
	}

	return nil
}

// LatestEmailCode returns the newest code issued to the user
func (r *VerificationRepository) LatestEmailCode(ctx context.Context, userID uuid.UUID) (*domain.EmailVerificationCode, error) {
	query := `
		SELECT id, user_id, code_hash, expires_at, used_at, created_at
		FROM email_verification_codes
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var code domain.EmailVerificationCode
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&code.ID,
		&code.UserID,
		&code.CodeHash,
		&code.ExpiresAt,
		&code.UsedAt,
		&code.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get verification code: %w", err)
	}

	return &code, nil
}

func (r *VerificationRepository) MarkEmailCodeUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE email_verification_codes SET used_at = $2 WHERE id = $1`

	_, err := r.db.Pool.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark code used: %w", err)
	}

	return nil
}

func (r *VerificationRepository) CreateResetToken(ctx context.Context, token *domain.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	return nil
}

// FindActiveResetToken returns the newest unused, unexpired token matching
// the hash, or nil when none qualifies.
func (r *VerificationRepository) FindActiveResetToken(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE token_hash = $1 AND used_at IS NULL AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var token domain.PasswordResetToken
	err := r.db.Pool.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.UsedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}

	return &token, nil
}

// ConsumeResetToken marks the token used and updates the password hash in
// one transaction so a token can never be replayed after a partial failure.
func (r *VerificationRepository) ConsumeResetToken(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reset: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE password_reset_tokens SET used_at = NOW() WHERE id = $1`, tokenID,
	); err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, userID, passwordHash,
	); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}

	return nil
}
