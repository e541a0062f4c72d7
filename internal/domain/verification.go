package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmailVerificationCode holds the HMAC hash of a six-digit signup code
type EmailVerificationCode struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	CodeHash  string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// PasswordResetToken holds the HMAC hash of a reset link token
type PasswordResetToken struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// VerifyCode represents email verification data
type VerifyCode struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// ResetPassword represents password reset data
type ResetPassword struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// VerificationRepository defines the interface for verification code and
// password reset token storage
type VerificationRepository interface {
	CreateEmailCode(ctx context.Context, code *EmailVerificationCode) error
	LatestEmailCode(ctx context.Context, userID uuid.UUID) (*EmailVerificationCode, error)
	MarkEmailCodeUsed(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateResetToken(ctx context.Context, token *PasswordResetToken) error
	// FindActiveResetToken returns the newest unused, unexpired token
	// matching the hash, or nil when none qualifies.
	FindActiveResetToken(ctx context.Context, tokenHash string) (*PasswordResetToken, error)
	// ConsumeResetToken marks the token used and updates the user's
	// password hash in a single transaction.
	ConsumeResetToken(ctx context.Context, tokenID, userID uuid.UUID, passwordHash string) error
}
