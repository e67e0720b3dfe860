package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"babysteps/internal/common"
	"babysteps/internal/models"
	"babysteps/internal/server/auth"
	"babysteps/internal/server/repositories/family"
)

type createInviteRequest struct {
	Email       string             `json:"email"`
	Name        string             `json:"name,omitempty"`
	Role        string             `json:"role,omitempty"`
	Permissions models.Permissions `json:"permissions"`
}

type createInviteResponse struct {
	Member    models.FamilyMember `json:"member"`
	Token     string              `json:"token"`
	ShareCode string              `json:"shareCode"`
}

// createInvite issues a pending membership plus the two credentials the
// invitee needs: a signed token and a short share code. The code is returned
// once and stored only as a hash.
func (h *Handler) createInvite(w http.ResponseWriter, r *http.Request) {
	ownerEmail := identityEmail(r)
	if ownerEmail == "" {
		http.Error(w, "identity required", http.StatusBadRequest)
		return
	}

	var req createInviteRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	owner, err := h.users.GetByEmail(r.Context(), ownerEmail)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	member := models.FamilyMember{
		ID:          uuid.NewString(),
		OwnerUserID: owner.ID,
		Email:       req.Email,
		Name:        req.Name,
		Role:        req.Role,
		Permissions: req.Permissions,
		Status:      models.InvitePending,
		InvitedAt:   time.Now(),
	}

	code, err := auth.NewShareCode()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	codeHash, err := auth.HashShareCode(code)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.family.Insert(r.Context(), &member, codeHash); err != nil {
		h.respondError(w, r, err)
		return
	}

	token, err := auth.GenerateInviteToken(member.ID, []byte(h.config.SecretKey), h.config.InviteValidityDuration)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, createInviteResponse{Member: member, Token: token, ShareCode: code})
}

type acceptInviteRequest struct {
	Token string `json:"token"`
	Code  string `json:"code"`
}

func (h *Handler) acceptInvite(w http.ResponseWriter, r *http.Request) {
	var req acceptInviteRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	inviteID, err := auth.GetInviteIDFromToken(req.Token, []byte(h.config.SecretKey))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	member, err := h.family.Redeem(r.Context(), inviteID, func(row *family.Row) error {
		// Revoked invites stay dead even with valid credentials.
		if row.Member.Status == models.InviteRevoked {
			return common.ErrInvalidInvite
		}
		return auth.VerifyShareCode(row.CodeHash, req.Code)
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, member)
}

func (h *Handler) revokeInvite(w http.ResponseWriter, r *http.Request) {
	inviteID := r.PathValue("inviteID")

	if err := h.family.UpdateStatus(r.Context(), inviteID, models.InviteRevoked); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) listFamily(w http.ResponseWriter, r *http.Request) {
	email := identityEmail(r)
	if email == "" {
		http.Error(w, "identity required", http.StatusBadRequest)
		return
	}

	owner, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	members, err := h.family.ListByOwner(r.Context(), owner.ID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, members)
}
