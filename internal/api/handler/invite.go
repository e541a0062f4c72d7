package handler

import (
	"encoding/json"
	"net/http"

	"github.com/laywill/laywill-api/internal/api/middleware"
	"github.com/laywill/laywill-api/internal/api/response"
	"github.com/laywill/laywill-api/internal/domain"
	"github.com/laywill/laywill-api/internal/service"
)

// InviteHandler handles invite endpoints
type InviteHandler struct {
	inviteService *service.InviteService
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(inviteService *service.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// Create issues an invite for the caller's workspace
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}
	workspaceID, ok := middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.InternalError(w, "workspace not resolved")
		return
	}

	var input domain.InviteCreate
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			response.BadRequest(w, "invalid request body")
			return
		}
		if err := validate.Struct(input); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
	}

	invite, err := h.inviteService.Create(r.Context(), workspaceID, identity.UserID, &input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.Created(w, map[string]any{
		"id":         invite.ID,
		"token":      invite.Token,
		"link":       h.inviteService.InviteLink(invite.Token),
		"role":       invite.Role,
		"expires_at": invite.ExpiresAt,
	})
}

// Accept redeems an invite token for the caller
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.InviteAccept
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	workspaceID, err := h.inviteService.Redeem(r.Context(), identity.UserID, input.Token)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"workspace_id": workspaceID,
	})
}
