package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/laywill/laywill-api/internal/api/middleware"
	"github.com/laywill/laywill-api/internal/api/response"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/laywill/laywill-api/internal/service"
)

var validate = validator.New()

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input domain.UserSignup
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			errors := make(map[string]string)
			for _, e := range validationErrors {
				field := e.Field()
				tag := e.Tag()
				switch tag {
				case "required":
					errors[field] = "field is required"
				case "email":
					errors[field] = "invalid email format"
				case "min":
					errors[field] = "must be at least " + e.Param() + " characters"
				case "max":
					errors[field] = "must be at most " + e.Param() + " characters"
				default:
					errors[field] = "validation failed on " + tag
				}
			}
			response.BadRequest(w, errors)
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	user, err := h.authService.Signup(r.Context(), &input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.Created(w, map[string]any{
		"id":                    user.ID,
		"email":                 user.Email,
		"verification_required": user.EmailVerifiedAt == nil,
	})
}

// VerifyCode confirms the emailed signup code and starts a session
func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var input domain.VerifyCode
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tokens, err := h.authService.VerifyCode(r.Context(), &input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, tokens)
}

// ResendCode sends a fresh verification code
func (h *AuthHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.authService.ResendCode(r.Context(), input.Email); err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, map[string]string{
		"message": "verification code sent if the account exists",
	})
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tokens, err := h.authService.Login(r.Context(), &input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, tokens)
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), input.RefreshToken)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, tokens)
}

// ForgotPassword emails a password reset link
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), input.Email); err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, map[string]string{
		"message": "reset link sent if the account exists",
	})
}

// ResetPassword consumes a reset token and sets the new password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input domain.ResetPassword
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.authService.ResetPassword(r.Context(), &input); err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, map[string]string{
		"message": "password updated",
	})
}

// Logout drops the caller's cached workspace hint. Access tokens stay valid
// until they expire; clients discard them locally.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	h.authService.Logout(r.Context(), identity.UserID)

	response.OK(w, map[string]string{
		"message": "logged out",
	})
}

// Me returns the current authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	user, err := h.authService.Me(r.Context(), identity.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, user)
}
