package domain

import "errors"

// Sentinel errors. Expected absences (no workspace yet) are not errors and
// are reported as nil values instead.
var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailTaken           = errors.New("email already registered")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrEmailNotConfigured   = errors.New("email service not configured")
	ErrInvalidCode          = errors.New("invalid verification code")
	ErrInvalidResetToken    = errors.New("invalid reset token")
	ErrInviteNotFound       = errors.New("invite not found")
	ErrInviteAlreadyUsed    = errors.New("invite already used")
	ErrInviteExpired        = errors.New("invite expired")
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryExists       = errors.New("category already exists")
	ErrCategoryRequired     = errors.New("expense transactions require a category")
	ErrCategoryTypeMismatch = errors.New("transaction type does not match category type")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidDate          = errors.New("invalid date")
	ErrForbidden            = errors.New("access denied")
)
