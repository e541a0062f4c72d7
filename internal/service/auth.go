package service

import (
	"context"
	"crypto/hmac"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/laywill/laywill-api/internal/config"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/laywill/laywill-api/internal/email"
	"github.com/laywill/laywill-api/internal/repository/postgres"
	"github.com/laywill/laywill-api/internal/security"
	"github.com/rs/zerolog/log"
)

const (
	verificationCodeLength = 6
	resetTokenBytes        = 32
)

// AuthService handles registration, email verification, login and password
// recovery
type AuthService struct {
	users         domain.UserRepository
	verifications domain.VerificationRepository
	jwtManager    *security.JWTManager
	mailer        email.Mailer
	hints         domain.WorkspaceHintCache
	cfg           config.AuthConfig
	appURL        string
}

// NewAuthService creates a new auth service
func NewAuthService(
	users domain.UserRepository,
	verifications domain.VerificationRepository,
	jwtManager *security.JWTManager,
	mailer email.Mailer,
	hints domain.WorkspaceHintCache,
	cfg config.AuthConfig,
	appURL string,
) *AuthService {
	return &AuthService{
		users:         users,
		verifications: verifications,
		jwtManager:    jwtManager,
		mailer:        mailer,
		hints:         hints,
		cfg:           cfg,
		appURL:        appURL,
	}
}

// Signup registers a new user and emails a verification code. When no mailer
// is configured the account is verified immediately so local setups can log
// in without email delivery.
func (s *AuthService) Signup(ctx context.Context, req *domain.UserSignup) (*domain.User, error) {
	normalized := security.NormalizeEmail(req.Email)

	exists, err := s.users.EmailExists(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        normalized,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = &name
	}

	if err := s.users.Create(ctx, user); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	if s.mailer == nil || !s.mailer.Configured() {
		log.Warn().Str("email", normalized).Msg("Mailer not configured, auto-verifying account")
		verifiedAt := time.Now()
		if err := s.users.SetEmailVerified(ctx, user.ID, verifiedAt); err != nil {
			return nil, err
		}
		user.EmailVerifiedAt = &verifiedAt
		return user, nil
	}

	if err := s.issueVerificationCode(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyCode confirms a signup code and returns a session token pair
func (s *AuthService) VerifyCode(ctx context.Context, req *domain.VerifyCode) (*domain.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, security.NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCode
	}

	code, err := s.verifications.LatestEmailCode(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if code == nil || code.UsedAt != nil || !time.Now().Before(code.ExpiresAt) {
		return nil, domain.ErrInvalidCode
	}

	hashed := security.HashToken(strings.TrimSpace(req.Code), s.cfg.JWTSecret)
	if !hmac.Equal([]byte(hashed), []byte(code.CodeHash)) {
		return nil, domain.ErrInvalidCode
	}

	now := time.Now()
	if err := s.verifications.MarkEmailCodeUsed(ctx, code.ID, now); err != nil {
		return nil, err
	}
	if err := s.users.SetEmailVerified(ctx, user.ID, now); err != nil {
		return nil, err
	}

	return s.tokenPair(user)
}

// ResendCode issues a fresh verification code. It is a no-op for unknown or
// already verified emails so the endpoint does not leak account existence.
func (s *AuthService) ResendCode(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, security.NormalizeEmail(emailAddr))
	if err != nil {
		return err
	}
	if user == nil || user.EmailVerifiedAt != nil {
		return nil
	}

	if s.mailer == nil || !s.mailer.Configured() {
		return domain.ErrEmailNotConfigured
	}

	return s.issueVerificationCode(ctx, user)
}

// Login authenticates credentials and returns a session token pair
func (s *AuthService) Login(ctx context.Context, req *domain.UserLogin) (*domain.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, security.NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || !security.CheckPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if user.EmailVerifiedAt == nil {
		return nil, domain.ErrEmailNotVerified
	}

	return s.tokenPair(user)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.tokenPair(user)
}

// ForgotPassword emails a reset link. Unknown emails are silently accepted.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, security.NormalizeEmail(emailAddr))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if s.mailer == nil || !s.mailer.Configured() {
		return domain.ErrEmailNotConfigured
	}

	token, err := security.GenerateHexToken(resetTokenBytes)
	if err != nil {
		return err
	}

	now := time.Now()
	reset := &domain.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: security.HashToken(token, s.cfg.JWTSecret),
		ExpiresAt: now.Add(s.cfg.ResetTokenTTL),
		CreatedAt: now,
	}
	if err := s.verifications.CreateResetToken(ctx, reset); err != nil {
		return err
	}

	link := strings.TrimSuffix(s.appURL, "/") + "/reset-password/" + token
	subject, html := email.ResetPasswordTemplate(link)
	return s.mailer.Send(ctx, user.Email, subject, html)
}

// ResetPassword consumes a reset token and sets the new password
func (s *AuthService) ResetPassword(ctx context.Context, req *domain.ResetPassword) error {
	hashed := security.HashToken(strings.TrimSpace(req.Token), s.cfg.JWTSecret)

	reset, err := s.verifications.FindActiveResetToken(ctx, hashed)
	if err != nil {
		return err
	}
	if reset == nil {
		return domain.ErrInvalidResetToken
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return err
	}

	return s.verifications.ConsumeResetToken(ctx, reset.ID, reset.UserID, passwordHash)
}

// Logout clears the user's server-side session state. Tokens are stateless,
// so the only state to drop is the cached workspace hint.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) {
	if s.hints == nil {
		return
	}
	if err := s.hints.Invalidate(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("Failed to invalidate workspace hint on logout")
	}
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}

func (s *AuthService) issueVerificationCode(ctx context.Context, user *domain.User) error {
	code, err := security.GenerateNumericCode(verificationCodeLength)
	if err != nil {
		return err
	}

	now := time.Now()
	record := &domain.EmailVerificationCode{
		ID:        uuid.New(),
		UserID:    user.ID,
		CodeHash:  security.HashToken(code, s.cfg.JWTSecret),
		ExpiresAt: now.Add(s.cfg.VerificationCodeTTL),
		CreatedAt: now,
	}
	if err := s.verifications.CreateEmailCode(ctx, record); err != nil {
		return err
	}

	subject, html := email.VerificationTemplate(code)
	if err := s.mailer.Send(ctx, user.Email, subject, html); err != nil {
		return err
	}

	return nil
}

func (s *AuthService) tokenPair(user *domain.User) (*domain.TokenPair, error) {
	name := ""
	if user.Name != nil {
		name = *user.Name
	}

	access, refresh, expiresIn, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email, name)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	}, nil
}
