package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/laywill/laywill-api/internal/domain"
)

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized},
		{"email not verified", domain.ErrEmailNotVerified, http.StatusForbidden},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"category exists", domain.ErrCategoryExists, http.StatusConflict},
		{"invite not found", domain.ErrInviteNotFound, http.StatusNotFound},
		{"invite used", domain.ErrInviteAlreadyUsed, http.StatusGone},
		{"invite expired", domain.ErrInviteExpired, http.StatusGone},
		{"invalid code", domain.ErrInvalidCode, http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"type mismatch", domain.ErrCategoryTypeMismatch, http.StatusBadRequest},
		{"email not configured", domain.ErrEmailNotConfigured, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tt.err)

			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
