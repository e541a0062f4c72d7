package handler

import (
	"errors"
	"net/http"

	"github.com/laywill/laywill-api/internal/api/response"
	"github.com/laywill/laywill-api/internal/domain"
)

// writeDomainError maps service sentinel errors onto HTTP statuses
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, domain.ErrEmailNotVerified),
		errors.Is(err, domain.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrCategoryExists):
		response.Conflict(w, err.Error())
	case errors.Is(err, domain.ErrInviteNotFound),
		errors.Is(err, domain.ErrWorkspaceNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrInviteAlreadyUsed),
		errors.Is(err, domain.ErrInviteExpired):
		response.Gone(w, err.Error())
	case errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrInvalidResetToken),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAccountType),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrCategoryRequired),
		errors.Is(err, domain.ErrCategoryTypeMismatch):
		response.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrEmailNotConfigured):
		response.Error(w, http.StatusServiceUnavailable, err.Error())
	default:
		response.InternalError(w, "internal server error")
	}
}
