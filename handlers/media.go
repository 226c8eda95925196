package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/repository"
	"github.com/galeria-app/galeriabackend/services"
)

// MediaHandler exposes the owner-scoped media index. Album-mediated
// reads go through the album endpoints; everything here requires the
// owner and answers 404 for anything else.
type MediaHandler struct {
	Media *services.MediaService
}

func NewMediaHandler(media *services.MediaService) *MediaHandler {
	return &MediaHandler{Media: media}
}

func (h *MediaHandler) requireOwnedMedia(w http.ResponseWriter, r *http.Request) (*models.Media, bool) {
	media, err := h.Media.GetMediaByUUID(chi.URLParam(r, "media_uuid"))
	if err != nil {
		writeNotFound(w)
		return nil, false
	}
	if media.OwnerID != UserFromContext(r.Context()).ID {
		writeNotFound(w)
		return nil, false
	}
	return media, true
}

type InsertMediaPayload struct {
	FolderUUID  string     `json:"folder_uuid"`
	ContentHash string     `json:"content_hash"`
	Filename    string     `json:"filename"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Description *string    `json:"description,omitempty"`
	TakenAt     *time.Time `json:"taken_at,omitempty"`
}

func (h *MediaHandler) InsertMedia(w http.ResponseWriter, r *http.Request) {
	var payload InsertMediaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	if payload.FolderUUID == "" || payload.ContentHash == "" || payload.Filename == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Folder, content hash and filename are required")
		return
	}

	meta := models.MediaMetadata{
		Filename:    payload.Filename,
		Width:       payload.Width,
		Height:      payload.Height,
		Description: payload.Description,
	}
	if payload.TakenAt != nil {
		meta.TakenAt = *payload.TakenAt
	}

	media, err := h.Media.InsertMedia(UserFromContext(r.Context()), payload.FolderUUID, payload.ContentHash, meta)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(media)
}

func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	media, ok := h.requireOwnedMedia(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(media)
}

type MediaMovePayload struct {
	NewFolderUUID string `json:"new_folder_uuid"`
}

func (h *MediaHandler) MoveMedia(w http.ResponseWriter, r *http.Request) {
	media, ok := h.requireOwnedMedia(w, r)
	if !ok {
		return
	}

	var payload MediaMovePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	if payload.NewFolderUUID == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Destination folder is required")
		return
	}

	if err := h.Media.MoveMedia(media.UUID, payload.NewFolderUUID); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	media, ok := h.requireOwnedMedia(w, r)
	if !ok {
		return
	}

	if err := h.Media.DeleteMedia(media.UUID); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchMedia filters the caller's own media. Filters arrive as query
// parameters and are all optional.
func (h *MediaHandler) SearchMedia(w http.ResponseWriter, r *http.Request) {
	opts, err := parseSearchOptions(r, h.Media)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	media, err := h.Media.SearchMedia(UserFromContext(r.Context()), opts)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(media)
}

func parseSearchOptions(r *http.Request, svc *services.MediaService) (repository.MediaSearchOptions, error) {
	var opts repository.MediaSearchOptions
	q := r.URL.Query()

	if v := q.Get("filename"); v != "" {
		opts.FilenameContains = &v
	}
	if v := q.Get("taken_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return opts, fmt.Errorf("taken_after must be an RFC 3339 timestamp")
		}
		opts.TakenAfter = &t
	}
	if v := q.Get("taken_before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return opts, fmt.Errorf("taken_before must be an RFC 3339 timestamp")
		}
		opts.TakenBefore = &t
	}
	if v := q.Get("folder_uuid"); v != "" {
		folder, err := svc.GetFolderByUUID(v)
		if err != nil {
			return opts, fmt.Errorf("unknown folder %q", v)
		}
		opts.FolderID = &folder.ID
	}

	return opts, nil
}
