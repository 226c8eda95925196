package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/services"
)

// FolderHandler exposes the folder tree. Folders are strictly private:
// every endpoint requires the authenticated owner, and a folder owned
// by someone else is indistinguishable from a missing one.
type FolderHandler struct {
	Media *services.MediaService
}

func NewFolderHandler(media *services.MediaService) *FolderHandler {
	return &FolderHandler{Media: media}
}

func (h *FolderHandler) requireOwnedFolder(w http.ResponseWriter, r *http.Request) (*models.Folder, bool) {
	folder, err := h.Media.GetFolderByUUID(chi.URLParam(r, "folder_uuid"))
	if err != nil {
		writeNotFound(w)
		return nil, false
	}
	if folder.OwnerID != UserFromContext(r.Context()).ID {
		writeNotFound(w)
		return nil, false
	}
	return folder, true
}

type FolderPayload struct {
	Name       string  `json:"name"`
	ParentUUID *string `json:"parent_uuid,omitempty"`
}

func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var payload FolderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	if payload.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Folder name is required")
		return
	}

	folder, err := h.Media.CreateFolder(UserFromContext(r.Context()), payload.Name, payload.ParentUUID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(folder)
}

func (h *FolderHandler) ListRootFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.Media.ListRootFolders(UserFromContext(r.Context()))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(folders)
}

func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.requireOwnedFolder(w, r)
	if !ok {
		return
	}

	listing, err := h.Media.ListFolder(folder.UUID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(listing)
}

type FolderUpdatePayload struct {
	Name *string `json:"name,omitempty"`
}

func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.requireOwnedFolder(w, r)
	if !ok {
		return
	}

	var payload FolderUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	if payload.Name == nil || *payload.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Folder name is required")
		return
	}

	if err := h.Media.RenameFolder(folder.UUID, *payload.Name); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type FolderMovePayload struct {
	NewParentUUID *string `json:"new_parent_uuid"`
}

func (h *FolderHandler) MoveFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.requireOwnedFolder(w, r)
	if !ok {
		return
	}

	var payload FolderMovePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}

	if err := h.Media.MoveFolder(folder.UUID, payload.NewParentUUID); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	folder, ok := h.requireOwnedFolder(w, r)
	if !ok {
		return
	}

	if err := h.Media.DeleteFolder(folder.UUID); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
