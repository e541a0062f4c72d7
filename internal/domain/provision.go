package domain

import (
	"context"

	"github.com/google/uuid"
)

// Stage identifies the provisioning step a failure occurred in. The set is
// closed so callers and tests can branch on specific failure points.
type Stage string

const (
	StageNone                   Stage = ""
	StageNotAuthenticated       Stage = "notAuthenticated"
	StageLookup                 Stage = "lookup"
	StageEnsureProfileSelect    Stage = "ensureProfile.select"
	StageEnsureProfileInsert    Stage = "ensureProfile.insert"
	StageWorkspaceInsert        Stage = "createWorkspace.insert"
	StageWorkspaceInsertRLS     Stage = "createWorkspace.insertRLS"
	StageRPCFallback            Stage = "createWorkspace.rpcFallback"
	StageMemberInsert           Stage = "createWorkspace.memberInsert"
	StageDefaultsSelectAccount  Stage = "defaults.selectAccount"
	StageDefaultsInsertAccount  Stage = "defaults.insertAccount"
	StageDefaultsSelectCategory Stage = "defaults.selectCategory"
	StageDefaultsInsertCategory Stage = "defaults.insertCategory"
)

// WorkspaceResult is the tagged outcome of a provisioning call. An absent
// workspace is reported as a nil-valued WorkspaceID with no error; Stage is
// only set when Err is.
type WorkspaceResult struct {
	WorkspaceID uuid.UUID
	Stage       Stage
	Err         error
}

// Found reports whether the result carries a workspace id
func (r WorkspaceResult) Found() bool {
	return r.WorkspaceID != uuid.Nil
}

// Prune policy for legacy categories (when the cleanup step runs)
const (
	PruneAtBootstrap = "bootstrap"
	PruneAtLookup    = "lookup"
)

// WorkspaceHintCache stores the client-visible "current workspace id" hint.
// The hint is never trusted blindly; provisioning re-validates it against an
// actual membership row before returning it.
type WorkspaceHintCache interface {
	Get(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	Set(ctx context.Context, userID, workspaceID uuid.UUID) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
