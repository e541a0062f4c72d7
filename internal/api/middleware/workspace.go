package middleware

import (
	"net/http"

	"github.com/laywill/laywill-api/internal/api/response"
	"github.com/laywill/laywill-api/internal/service"
	"github.com/rs/zerolog/log"
)

// WorkspaceResolver resolves the caller's current workspace, bootstrapping
// one on first use, and stores its id in the request context.
type WorkspaceResolver struct {
	provisioner *service.ProvisionService
}

// NewWorkspaceResolver creates a new workspace resolver middleware
func NewWorkspaceResolver(provisioner *service.ProvisionService) *WorkspaceResolver {
	return &WorkspaceResolver{provisioner: provisioner}
}

// Resolve attaches the caller's workspace id to the request context
func (m *WorkspaceResolver) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok {
			response.Unauthorized(w, "unauthorized")
			return
		}

		result := m.provisioner.CurrentWorkspace(r.Context(), identity)
		if !result.Found() {
			log.Error().Err(result.Err).
				Str("stage", string(result.Stage)).
				Str("user_id", identity.UserID.String()).
				Msg("Failed to resolve workspace")
			response.InternalError(w, map[string]any{
				"message": "failed to resolve workspace",
				"stage":   result.Stage,
			})
			return
		}
		if result.Err != nil {
			// Workspace exists but default seeding failed; requests proceed
			log.Warn().Err(result.Err).
				Str("stage", string(result.Stage)).
				Msg("Workspace resolved with degraded defaults")
		}

		ctx := WithWorkspaceID(r.Context(), result.WorkspaceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
