package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/laywill/laywill-api/internal/config"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/laywill/laywill-api/internal/repository/postgres"
	"github.com/laywill/laywill-api/internal/security"
	"github.com/rs/zerolog/log"
)

var errMissingEmail = errors.New("identity has no email")

// ProvisionService guarantees every authenticated user ends up owning or
// belonging to a workspace. Races between devices are resolved by optimistic
// insert, conflict detection and re-lookup rather than locking.
type ProvisionService struct {
	users        domain.UserRepository
	workspaces   domain.WorkspaceRepository
	accounts     domain.AccountRepository
	categories   domain.CategoryRepository
	transactions domain.TransactionRepository
	hints        domain.WorkspaceHintCache
	cfg          config.ProvisionConfig
	sleep        func(time.Duration)
}

// NewProvisionService creates a new provisioning service
func NewProvisionService(
	users domain.UserRepository,
	workspaces domain.WorkspaceRepository,
	accounts domain.AccountRepository,
	categories domain.CategoryRepository,
	transactions domain.TransactionRepository,
	hints domain.WorkspaceHintCache,
	cfg config.ProvisionConfig,
) *ProvisionService {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 4
	}
	return &ProvisionService{
		users:        users,
		workspaces:   workspaces,
		accounts:     accounts,
		categories:   categories,
		transactions: transactions,
		hints:        hints,
		cfg:          cfg,
		sleep:        time.Sleep,
	}
}

// WorkspaceForUser returns the user's current workspace id, or uuid.Nil when
// the user has no membership yet. Absence is the normal new-user path, not
// an error.
func (s *ProvisionService) WorkspaceForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	return s.workspaces.LatestWorkspaceForUser(ctx, userID)
}

// CurrentWorkspace resolves the workspace for an authenticated identity:
// cached hint first (re-validated against a membership row), then lookup,
// then bootstrap, then one post-failure re-lookup to pick up a concurrent
// winner.
func (s *ProvisionService) CurrentWorkspace(ctx context.Context, identity domain.Identity) domain.WorkspaceResult {
	if identity.UserID == uuid.Nil {
		return domain.WorkspaceResult{Stage: domain.StageNotAuthenticated, Err: domain.ErrNotAuthenticated}
	}

	if s.hints != nil {
		hinted, err := s.hints.Get(ctx, identity.UserID)
		if err == nil && hinted != uuid.Nil {
			// Stale or revoked hints must not be trusted blindly
			isMember, err := s.workspaces.IsMember(ctx, hinted, identity.UserID)
			if err == nil && isMember {
				s.ensureDefaultsAtLookup(ctx, hinted)
				return domain.WorkspaceResult{WorkspaceID: hinted}
			}
		}
	}

	existing, err := s.workspaces.LatestWorkspaceForUser(ctx, identity.UserID)
	if err != nil {
		return domain.WorkspaceResult{Stage: domain.StageLookup, Err: err}
	}
	if existing != uuid.Nil {
		s.cacheHint(ctx, identity.UserID, existing)
		s.ensureDefaultsAtLookup(ctx, existing)
		return domain.WorkspaceResult{WorkspaceID: existing}
	}

	created := s.EnsureWorkspace(ctx, identity)
	if created.Found() {
		return created
	}

	// A concurrent bootstrap from another device may have won
	retry, err := s.workspaces.LatestWorkspaceForUser(ctx, identity.UserID)
	if err == nil && retry != uuid.Nil {
		s.cacheHint(ctx, identity.UserID, retry)
		s.ensureDefaultsAtLookup(ctx, retry)
		return domain.WorkspaceResult{WorkspaceID: retry}
	}

	return created
}

// EnsureWorkspace bootstraps a workspace, owner membership and default data
// for a user with no membership. Partial success is recoverable by re-lookup;
// a single race never yields two owner workspaces.
func (s *ProvisionService) EnsureWorkspace(ctx context.Context, identity domain.Identity) domain.WorkspaceResult {
	if stage, err := s.ensureProfile(ctx, identity); err != nil {
		return domain.WorkspaceResult{Stage: stage, Err: err}
	}

	name := workspaceName(identity)
	now := time.Now()
	workspace := &domain.Workspace{
		ID:        uuid.New(),
		Name:      name,
		Currency:  domain.DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var insertErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		insertErr = s.workspaces.Create(ctx, workspace)
		if insertErr == nil || postgres.IsUniqueViolation(insertErr) {
			// A unique hit means an earlier ambiguous attempt landed
			insertErr = nil
			break
		}
		if postgres.IsPermissionDenied(insertErr) {
			break
		}
		if attempt < s.cfg.MaxAttempts {
			s.delay()
		}
	}

	if insertErr != nil {
		if postgres.IsPermissionDenied(insertErr) {
			return s.bootstrapFallback(ctx, name, identity.UserID)
		}
		return domain.WorkspaceResult{Stage: domain.StageWorkspaceInsert, Err: insertErr}
	}

	var memberErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		memberErr = s.workspaces.AddMember(ctx, &domain.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      identity.UserID,
			Role:        domain.RoleOwner,
			CreatedAt:   time.Now(),
		})
		if memberErr == nil || postgres.IsUniqueViolation(memberErr) {
			memberErr = nil
			break
		}
		// The foreign key can lag right after signup; re-ensure the
		// profile row before the next attempt
		s.ensureProfile(ctx, identity)
		if attempt < s.cfg.MaxAttempts {
			s.delay()
		}
	}

	if memberErr != nil {
		// A concurrent bootstrap may have already attached this user
		existing, err := s.workspaces.LatestWorkspaceForUser(ctx, identity.UserID)
		if err == nil && existing != uuid.Nil {
			s.cacheHint(ctx, identity.UserID, existing)
			return domain.WorkspaceResult{WorkspaceID: existing}
		}
		return domain.WorkspaceResult{Stage: domain.StageMemberInsert, Err: memberErr}
	}

	s.cacheHint(ctx, identity.UserID, workspace.ID)

	prune := s.cfg.PrunePolicy == domain.PruneAtBootstrap
	if stage, err := s.EnsureDefaults(ctx, workspace.ID, prune); err != nil {
		// Workspace is valid; seeding failure is reported but not fatal
		return domain.WorkspaceResult{WorkspaceID: workspace.ID, Stage: stage, Err: err}
	}

	return domain.WorkspaceResult{WorkspaceID: workspace.ID}
}

// EnsureDefaults idempotently seeds the wallet account and default expense
// categories, and optionally prunes unused legacy categories.
func (s *ProvisionService) EnsureDefaults(ctx context.Context, workspaceID uuid.UUID, prune bool) (domain.Stage, error) {
	hasAccount, err := s.accounts.ExistsForWorkspace(ctx, workspaceID)
	if err != nil {
		return domain.StageDefaultsSelectAccount, err
	}

	if !hasAccount {
		err := s.accounts.Create(ctx, &domain.Account{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			Name:        domain.DefaultAccountName,
			Type:        domain.AccountTypeWallet,
			CreatedAt:   time.Now(),
		})
		if err != nil && !postgres.IsUniqueViolation(err) {
			return domain.StageDefaultsInsertAccount, err
		}
	}

	existing, err := s.categories.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return domain.StageDefaultsSelectCategory, err
	}

	present := make(map[string]bool, len(existing))
	for _, c := range existing {
		present[c.Name+"::"+c.Type] = true
	}

	var missing []domain.Category
	for _, name := range domain.DefaultExpenseCategories {
		if present[name+"::"+domain.CategoryTypeExpense] {
			continue
		}
		missing = append(missing, domain.Category{
			ID:          uuid.New(),
			WorkspaceID: workspaceID,
			Name:        name,
			Type:        domain.CategoryTypeExpense,
			CreatedAt:   time.Now(),
		})
	}

	if len(missing) > 0 {
		if _, err := s.categories.CreateMany(ctx, missing); err != nil {
			return domain.StageDefaultsInsertCategory, err
		}
	}

	if prune {
		s.pruneLegacyCategories(ctx, workspaceID, existing)
	}

	return domain.StageNone, nil
}

// pruneLegacyCategories is best-effort cleanup: a category referenced by any
// transaction is never deleted.
func (s *ProvisionService) pruneLegacyCategories(ctx context.Context, workspaceID uuid.UUID, categories []domain.Category) {
	var candidates []uuid.UUID
	for _, c := range categories {
		if domain.LegacyCategoryNames[c.Name] || c.Type == domain.CategoryTypeIncome {
			candidates = append(candidates, c.ID)
		}
	}
	if len(candidates) == 0 {
		return
	}

	used, err := s.transactions.UsedCategoryIDs(ctx, workspaceID, candidates)
	if err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID.String()).Msg("Skipping legacy category prune")
		return
	}

	var safe []uuid.UUID
	for _, id := range candidates {
		if !used[id] {
			safe = append(safe, id)
		}
	}
	if len(safe) == 0 {
		return
	}

	if err := s.categories.DeleteByIDs(ctx, workspaceID, safe); err != nil {
		log.Warn().Err(err).Str("workspace_id", workspaceID.String()).Msg("Failed to prune legacy categories")
	}
}

// ensureProfile makes sure a profile row exists for the authenticated
// identity, retrying transient insert failures.
func (s *ProvisionService) ensureProfile(ctx context.Context, identity domain.Identity) (domain.Stage, error) {
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		existing, err := s.users.GetByID(ctx, identity.UserID)
		if err != nil {
			return domain.StageEnsureProfileSelect, err
		}
		if existing != nil {
			return domain.StageNone, nil
		}

		email := security.NormalizeEmail(identity.Email)
		if email == "" {
			return domain.StageEnsureProfileInsert, errMissingEmail
		}

		var name *string
		if identity.Name != "" {
			n := identity.Name
			name = &n
		}

		now := time.Now()
		err = s.users.Create(ctx, &domain.User{
			ID:        identity.UserID,
			Email:     email,
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err == nil || postgres.IsUniqueViolation(err) {
			return domain.StageNone, nil
		}
		if attempt < s.cfg.MaxAttempts {
			s.delay()
			continue
		}
		return domain.StageEnsureProfileInsert, err
	}

	return domain.StageEnsureProfileInsert, errors.New("failed to ensure profile")
}

// bootstrapFallback runs the privileged server-side procedure after a
// permission-denied workspace insert.
func (s *ProvisionService) bootstrapFallback(ctx context.Context, name string, userID uuid.UUID) domain.WorkspaceResult {
	workspaceID, err := s.workspaces.BootstrapForUser(ctx, name, userID)
	if err != nil {
		return domain.WorkspaceResult{Stage: domain.StageRPCFallback, Err: err}
	}

	s.cacheHint(ctx, userID, workspaceID)
	if stage, err := s.EnsureDefaults(ctx, workspaceID, s.cfg.PrunePolicy == domain.PruneAtBootstrap); err != nil {
		return domain.WorkspaceResult{WorkspaceID: workspaceID, Stage: stage, Err: err}
	}

	return domain.WorkspaceResult{WorkspaceID: workspaceID}
}

func (s *ProvisionService) ensureDefaultsAtLookup(ctx context.Context, workspaceID uuid.UUID) {
	prune := s.cfg.PrunePolicy == domain.PruneAtLookup
	if stage, err := s.EnsureDefaults(ctx, workspaceID, prune); err != nil {
		log.Warn().Err(err).
			Str("workspace_id", workspaceID.String()).
			Str("stage", string(stage)).
			Msg("Failed to ensure workspace defaults")
	}
}

func (s *ProvisionService) cacheHint(ctx context.Context, userID, workspaceID uuid.UUID) {
	if s.hints == nil {
		return
	}
	if err := s.hints.Set(ctx, userID, workspaceID); err != nil {
		log.Warn().Err(err).Msg("Failed to cache workspace hint")
	}
}

func (s *ProvisionService) delay() {
	if s.cfg.RetryDelay > 0 {
		s.sleep(s.cfg.RetryDelay)
	}
}

func workspaceName(identity domain.Identity) string {
	if identity.Name != "" {
		return "Workspace de " + identity.Name
	}
	if identity.Email != "" {
		return "Workspace de " + identity.Email
	}
	return "Meu Workspace"
}
