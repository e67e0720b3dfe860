package httpapi

import (
	"net/http"

	"babysteps/internal/common"
	"babysteps/internal/models"
)

func (h *Handler) upsertBaby(w http.ResponseWriter, r *http.Request) {
	email := identityEmail(r)
	if email == "" {
		http.Error(w, "identity required", http.StatusBadRequest)
		return
	}

	var baby models.Baby
	if err := decodeBody(r, &baby); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if baby.ID == "" || baby.Name == "" {
		http.Error(w, "id and name are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.babies.Upsert(r.Context(), user.ID, &baby); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, baby)
}

type avatarUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

// avatarUploadURL hands out a presigned PUT so the image bytes never pass
// through the API server.
func (h *Handler) avatarUploadURL(w http.ResponseWriter, r *http.Request) {
	babyID := r.PathValue("babyID")

	if _, err := h.babies.GetByID(r.Context(), babyID); err != nil {
		h.respondError(w, r, err)
		return
	}

	key, url, err := h.avatars.PresignedPutURL(r.Context(), babyID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, avatarUploadResponse{Key: key, UploadURL: url})
}

// avatarDownloadURL resolves the stored object key into a temporary GET URL.
func (h *Handler) avatarDownloadURL(w http.ResponseWriter, r *http.Request) {
	babyID := r.PathValue("babyID")

	baby, err := h.babies.GetByID(r.Context(), babyID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if baby.AvatarURL == "" {
		h.respondError(w, r, common.ErrorNotFound)
		return
	}

	url, err := h.avatars.PresignedGetURL(r.Context(), baby.AvatarURL)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

type setAvatarRequest struct {
	Key string `json:"key"`
}

// setAvatar records the uploaded object key as the baby's avatar once the
// client finishes its direct upload.
func (h *Handler) setAvatar(w http.ResponseWriter, r *http.Request) {
	babyID := r.PathValue("babyID")

	var req setAvatarRequest
	if err := decodeBody(r, &req); err != nil || req.Key == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if err := h.babies.SetAvatarURL(r.Context(), babyID, req.Key); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil)
}
