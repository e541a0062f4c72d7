package service

import (
	"context"
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
	numericInviteLength = 6
	hexInviteBytes      = 24
)

// InviteService issues and redeems workspace invites
type InviteService struct {
	invites    domain.InviteRepository
	workspaces domain.WorkspaceRepository
	hints      domain.WorkspaceHintCache
	mailer     email.Mailer
	cfg        config.InviteConfig
	appURL     string
}

// NewInviteService creates a new invite service
func NewInviteService(
	invites domain.InviteRepository,
	workspaces domain.WorkspaceRepository,
	hints domain.WorkspaceHintCache,
	mailer email.Mailer,
	cfg config.InviteConfig,
	appURL string,
) *InviteService {
	return &InviteService{
		invites:    invites,
		workspaces: workspaces,
		hints:      hints,
		mailer:     mailer,
		cfg:        cfg,
		appURL:     appURL,
	}
}

// Create issues a single-use invite for the caller's workspace. The caller
// must already be a member of the workspace.
func (s *InviteService) Create(ctx context.Context, workspaceID, userID uuid.UUID, req *domain.InviteCreate) (*domain.WorkspaceInvite, error) {
	isMember, err := s.workspaces.IsMember(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, domain.ErrForbidden
	}

	token, err := s.generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invite := &domain.WorkspaceInvite{
		ID:          uuid.New(),
		Token:       token,
		WorkspaceID: workspaceID,
		Role:        domain.RoleEditor,
		ExpiresAt:   now.Add(s.ttl()),
		CreatedAt:   now,
	}
	if req != nil && req.Email != "" {
		normalized := security.NormalizeEmail(req.Email)
		invite.Email = &normalized
	}

	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, err
	}

	if invite.Email != nil && s.mailer != nil && s.mailer.Configured() {
		subject, html := email.InviteTemplate(invite.Token, s.InviteLink(invite.Token))
		if err := s.mailer.Send(ctx, *invite.Email, subject, html); err != nil {
			// Invite is already issued; delivery failure is not fatal
			log.Warn().Err(err).Str("invite_id", invite.ID.String()).Msg("Failed to send invite email")
		}
	}

	return invite, nil
}

// Redeem consumes an invite and attaches the caller to its workspace.
// Redemption by an existing member is idempotent and only consumes the
// invite. Expiry is checked at the instant of redemption.
func (s *InviteService) Redeem(ctx context.Context, userID uuid.UUID, token string) (uuid.UUID, error) {
	invite, err := s.invites.GetByToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return uuid.Nil, err
	}
	if invite == nil {
		return uuid.Nil, domain.ErrInviteNotFound
	}
	if invite.UsedAt != nil {
		return uuid.Nil, domain.ErrInviteAlreadyUsed
	}
	if !time.Now().Before(invite.ExpiresAt) {
		return uuid.Nil, domain.ErrInviteExpired
	}

	now := time.Now()

	isMember, err := s.workspaces.IsMember(ctx, invite.WorkspaceID, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if isMember {
		if err := s.invites.MarkUsed(ctx, invite.ID, now); err != nil {
			return uuid.Nil, err
		}
		s.cacheHint(ctx, userID, invite.WorkspaceID)
		return invite.WorkspaceID, nil
	}

	member := &domain.WorkspaceMember{
		WorkspaceID: invite.WorkspaceID,
		UserID:      userID,
		Role:        invite.Role,
		CreatedAt:   now,
	}
	if err := s.invites.Redeem(ctx, invite.ID, member); err != nil {
		// A concurrent redemption by the same user already inserted the
		// membership row
		if postgres.IsUniqueViolation(err) {
			if markErr := s.invites.MarkUsed(ctx, invite.ID, now); markErr != nil {
				return uuid.Nil, markErr
			}
			s.cacheHint(ctx, userID, invite.WorkspaceID)
			return invite.WorkspaceID, nil
		}
		return uuid.Nil, err
	}

	s.cacheHint(ctx, userID, invite.WorkspaceID)
	return invite.WorkspaceID, nil
}

// InviteLink builds the deep link sent alongside the raw token
func (s *InviteService) InviteLink(token string) string {
	base := strings.TrimSuffix(s.appURL, "/")
	return base + "/invite/" + token
}

func (s *InviteService) generateToken() (string, error) {
	if s.cfg.TokenFormat == "hex" {
		return security.GenerateHexToken(hexInviteBytes)
	}
	return security.GenerateNumericCode(numericInviteLength)
}

func (s *InviteService) ttl() time.Duration {
	if s.cfg.TTL > 0 {
		return s.cfg.TTL
	}
	return 168 * time.Hour
}

func (s *InviteService) cacheHint(ctx context.Context, userID, workspaceID uuid.UUID) {
	if s.hints == nil {
		return
	}
	if err := s.hints.Set(ctx, userID, workspaceID); err != nil {
		log.Warn().Err(err).Msg("Failed to cache workspace hint")
	}
}
