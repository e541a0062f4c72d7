package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/laywill/laywill-api/internal/config"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type inviteFixture struct {
	invites    *MockInviteRepository
	workspaces *MockWorkspaceRepository
	hints      *fakeHintCache
	mailer     *fakeMailer
	svc        *InviteService
}

func newInviteFixture(cfg config.InviteConfig) *inviteFixture {
	f := &inviteFixture{
		invites:    new(MockInviteRepository),
		workspaces: new(MockWorkspaceRepository),
		hints:      newFakeHintCache(),
		mailer:     &fakeMailer{configured: true},
	}
	f.svc = NewInviteService(f.invites, f.workspaces, f.hints, f.mailer, cfg, "laywill://")
	return f
}

func activeInvite(workspaceID uuid.UUID) *domain.WorkspaceInvite {
	return &domain.WorkspaceInvite{
		ID:          uuid.New(),
		Token:       "123456",
		WorkspaceID: workspaceID,
		Role:        domain.RoleEditor,
		ExpiresAt:   time.Now().Add(time.Hour),
		CreatedAt:   time.Now(),
	}
}

func TestInviteCreate(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()

	t.Run("numeric token", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: 168 * time.Hour})
		f.workspaces.On("IsMember", ctx, workspaceID, userID).Return(true, nil)

		var created *domain.WorkspaceInvite
		f.invites.On("Create", ctx, mock.AnythingOfType("*domain.WorkspaceInvite")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.WorkspaceInvite)
			}).
			Return(nil)

		invite, err := f.svc.Create(ctx, workspaceID, userID, &domain.InviteCreate{})
		assert.NoError(t, err)
		assert.NotNil(t, invite)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), created.Token)
		assert.Equal(t, domain.RoleEditor, created.Role)
		assert.WithinDuration(t, time.Now().Add(168*time.Hour), created.ExpiresAt, 5*time.Second)
	})

	t.Run("hex token", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "hex", TTL: 24 * time.Hour})
		f.workspaces.On("IsMember", ctx, workspaceID, userID).Return(true, nil)

		var created *domain.WorkspaceInvite
		f.invites.On("Create", ctx, mock.AnythingOfType("*domain.WorkspaceInvite")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.WorkspaceInvite)
			}).
			Return(nil)

		_, err := f.svc.Create(ctx, workspaceID, userID, nil)
		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{48}$`), created.Token)
	})

	t.Run("non-member forbidden", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
		f.workspaces.On("IsMember", ctx, workspaceID, userID).Return(false, nil)

		_, err := f.svc.Create(ctx, workspaceID, userID, nil)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.invites.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("emailed invite", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
		f.workspaces.On("IsMember", ctx, workspaceID, userID).Return(true, nil)
		f.invites.On("Create", ctx, mock.AnythingOfType("*domain.WorkspaceInvite")).Return(nil)

		invite, err := f.svc.Create(ctx, workspaceID, userID, &domain.InviteCreate{Email: "Parceiro@Example.com"})
		assert.NoError(t, err)
		assert.Equal(t, "parceiro@example.com", *invite.Email)
		assert.Len(t, f.mailer.sent, 1)
		assert.Equal(t, "parceiro@example.com", f.mailer.sent[0].to)
		assert.Contains(t, f.mailer.sent[0].html, invite.Token)
	})
}

func TestInviteRedeem(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()

	t.Run("new member joins", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
		invite := activeInvite(workspaceID)

		f.invites.On("GetByToken", ctx, invite.Token).Return(invite, nil)
		f.workspaces.On("IsMember", ctx, workspaceID, userID).Return(false, nil)
		f.invites.On("Redeem", ctx, invite.ID, mock.MatchedBy(func(m *domain.WorkspaceMember) bool {
			return m.UserID == userID && m.Role == domain.RoleEditor && m.WorkspaceID == workspaceID
		})).Return(nil)

		got, err := f.svc.Redeem(ctx, userID, invite.Token)
		assert.NoError(t, err)
		assert.Equal(t, workspaceID, got)

		hinted, _ := f.hints.Get(ctx, userID)
		assert.Equal(t, workspaceID, hinted)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
		f.invites.On("GetByToken", ctx, "000000").Return(nil, nil)

		_, err := f.svc.Redeem(ctx, userID, "000000")
		assert.ErrorIs(t, err, domain.ErrInviteNotFound)
	})

	t.Run("already used", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
		invite := activeInvite(workspaceID)
		usedAt := time.Now().Add(-time.Minute)
		invite.UsedAt = &usedAt

		f.invites.On("GetByToken", ctx, invite.Token).Return(invite, nil)

		_, err := f.svc.Redeem(ctx, userID, invite.Token)
		assert.ErrorIs(t, err, domain.ErrInviteAlreadyUsed)
		f.invites.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
		invite := activeInvite(workspaceID)
		invite.ExpiresAt = time.Now().Add(-time.Second)

		f.invites.On("GetByToken", ctx, invite.Token).Return(invite, nil)

		_, err := f.svc.Redeem(ctx, userID, invite.Token)
		assert.ErrorIs(t, err, domain.ErrInviteExpired)
	})

	t.Run("not yet expired at boundary", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
		invite := activeInvite(workspaceID)
		invite.ExpiresAt = time.Now().Add(2 * time.Second)

		f.invites.On("GetByToken", ctx, invite.Token).Return(invite, nil)
		f.workspaces.On("IsMember", ctx, workspaceID, userID).Return(false, nil)
		f.invites.On("Redeem", ctx, invite.ID, mock.AnythingOfType("*domain.WorkspaceMember")).Return(nil)

		_, err := f.svc.Redeem(ctx, userID, invite.Token)
		assert.NoError(t, err)
	})

	t.Run("existing member only consumes invite", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
		invite := activeInvite(workspaceID)

		f.invites.On("GetByToken", ctx, invite.Token).Return(invite, nil)
		f.workspaces.On("IsMember", ctx, workspaceID, userID).Return(true, nil)
		f.invites.On("MarkUsed", ctx, invite.ID, mock.AnythingOfType("time.Time")).Return(nil)

		got, err := f.svc.Redeem(ctx, userID, invite.Token)
		assert.NoError(t, err)
		assert.Equal(t, workspaceID, got)
		f.invites.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("concurrent member insert tolerated", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
		invite := activeInvite(workspaceID)

		f.invites.On("GetByToken", ctx, invite.Token).Return(invite, nil)
		f.workspaces.On("IsMember", ctx, workspaceID, userID).Return(false, nil)
		f.invites.On("Redeem", ctx, invite.ID, mock.AnythingOfType("*domain.WorkspaceMember")).
			Return(&pgconn.PgError{Code: "23505"})
		f.invites.On("MarkUsed", ctx, invite.ID, mock.AnythingOfType("time.Time")).Return(nil)

		got, err := f.svc.Redeem(ctx, userID, invite.Token)
		assert.NoError(t, err)
		assert.Equal(t, workspaceID, got)
	})

	t.Run("token trimmed before lookup", func(t *testing.T) {
		f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
		invite := activeInvite(workspaceID)

		f.invites.On("GetByToken", ctx, invite.Token).Return(invite, nil)
		f.workspaces.On("IsMember", ctx, workspaceID, userID).Return(false, nil)
		f.invites.On("Redeem", ctx, invite.ID, mock.AnythingOfType("*domain.WorkspaceMember")).Return(nil)

		_, err := f.svc.Redeem(ctx, userID, "  "+invite.Token+"  ")
		assert.NoError(t, err)
	})
}

func TestInviteLink(t *testing.T) {
	f := newInviteFixture(config.InviteConfig{TokenFormat: "numeric", TTL: time.Hour})
	assert.Equal(t, "laywill://invite/123456", f.svc.InviteLink("123456"))

	f.svc.appURL = "https://app.laywill.com/"
	assert.Equal(t, "https://app.laywill.com/invite/123456", f.svc.InviteLink("123456"))
}
