package handler

import (
	"net/http"

	"github.com/laywill/laywill-api/internal/api/middleware"
	"github.com/laywill/laywill-api/internal/api/response"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/laywill/laywill-api/internal/service"
	"github.com/rs/zerolog/log"
)

// WorkspaceHandler handles workspace endpoints
type WorkspaceHandler struct {
	provisioner *service.ProvisionService
	workspaces  domain.WorkspaceRepository
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(provisioner *service.ProvisionService, workspaces domain.WorkspaceRepository) *WorkspaceHandler {
	return &WorkspaceHandler{provisioner: provisioner, workspaces: workspaces}
}

// Current returns the caller's workspace, bootstrapping one on first call
func (h *WorkspaceHandler) Current(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	result := h.provisioner.CurrentWorkspace(r.Context(), identity)
	if !result.Found() {
		if result.Err != nil {
			log.Error().Err(result.Err).
				Str("stage", string(result.Stage)).
				Str("user_id", identity.UserID.String()).
				Msg("Workspace provisioning failed")
		}
		writeDomainError(w, result.Err)
		return
	}
	if result.Err != nil {
		log.Warn().Err(result.Err).
			Str("stage", string(result.Stage)).
			Msg("Workspace resolved with degraded defaults")
	}

	workspace, err := h.workspaces.GetByID(r.Context(), result.WorkspaceID)
	if err != nil {
		response.InternalError(w, "failed to load workspace")
		return
	}
	if workspace == nil {
		response.NotFound(w, "workspace not found")
		return
	}

	response.OK(w, workspace)
}
