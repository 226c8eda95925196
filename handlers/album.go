package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/permissions"
	"github.com/galeria-app/galeriabackend/services"
)

type AlbumHandler struct {
	Albums     *services.AlbumService
	ShareLinks *services.ShareLinkService
	Resolver   *permissions.Resolver
}

func NewAlbumHandler(albums *services.AlbumService, shareLinks *services.ShareLinkService, resolver *permissions.Resolver) *AlbumHandler {
	return &AlbumHandler{Albums: albums, ShareLinks: shareLinks, Resolver: resolver}
}

// resolveAlbum loads the album from the URL and computes the actor's
// permission on it. A missing album and an album the actor may not see
// produce the identical not-found response.
func (h *AlbumHandler) resolveAlbum(w http.ResponseWriter, r *http.Request) (*models.Album, permissions.Level, bool) {
	album, err := h.Albums.GetByUUID(chi.URLParam(r, "album_uuid"))
	if err != nil {
		writeNotFound(w)
		return nil, permissions.LevelNone, false
	}

	level, err := h.Resolver.Resolve(UserFromContext(r.Context()), album, PresentedFromContext(r.Context()))
	if err != nil {
		WriteDomainError(w, err)
		return nil, permissions.LevelNone, false
	}
	return album, level, true
}

// requireOwner loads the album and admits only its owner.
func (h *AlbumHandler) requireOwner(w http.ResponseWriter, r *http.Request) (*models.Album, *models.User, bool) {
	album, err := h.Albums.GetByUUID(chi.URLParam(r, "album_uuid"))
	if err != nil {
		writeNotFound(w)
		return nil, nil, false
	}
	user := UserFromContext(r.Context())
	if user == nil || album.OwnerID != user.ID {
		writeNotFound(w)
		return nil, nil, false
	}
	return album, user, true
}

type AlbumPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Password    *string `json:"password,omitempty"`
}

func (h *AlbumHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var payload AlbumPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	if payload.Name == "" {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Album name is required")
		return
	}

	album, err := h.Albums.Create(UserFromContext(r.Context()), payload.Name, payload.Description, payload.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(album)
}

func (h *AlbumHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := h.Albums.ListByOwner(UserFromContext(r.Context()).ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(albums)
}

func (h *AlbumHandler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	album, level, ok := h.resolveAlbum(w, r)
	if !ok {
		return
	}
	if !level.CanRead() {
		writeNotFound(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(album)
}

func (h *AlbumHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	album, level, ok := h.resolveAlbum(w, r)
	if !ok {
		return
	}
	if !level.CanWrite() {
		writeNotFound(w)
		return
	}

	var payload AlbumPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	if payload.Name == "" {
		payload.Name = album.Name
	}

	if err := h.Albums.Update(album, payload.Name, payload.Description); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AlbumHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	album, _, ok := h.requireOwner(w, r)
	if !ok {
		return
	}
	if err := h.Albums.Delete(album); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AlbumHandler) GetAlbumContents(w http.ResponseWriter, r *http.Request) {
	album, level, ok := h.resolveAlbum(w, r)
	if !ok {
		return
	}
	if !level.CanRead() {
		writeNotFound(w)
		return
	}

	media, err := h.Albums.ListMedia(album)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(media)
}

type AlbumMediaPayload struct {
	MediaUUID string `json:"media_uuid"`
}

func (h *AlbumHandler) AddAlbumMedia(w http.ResponseWriter, r *http.Request) {
	album, level, ok := h.resolveAlbum(w, r)
	if !ok {
		return
	}
	if !level.CanWrite() {
		writeNotFound(w)
		return
	}

	var payload AlbumMediaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}

	if err := h.Albums.AddMedia(album, payload.MediaUUID); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AlbumHandler) RemoveAlbumMedia(w http.ResponseWriter, r *http.Request) {
	album, level, ok := h.resolveAlbum(w, r)
	if !ok {
		return
	}
	if !level.CanWrite() {
		writeNotFound(w)
		return
	}

	if err := h.Albums.RemoveMedia(album, chi.URLParam(r, "media_uuid")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ThumbnailPayload struct {
	MediaUUID *string `json:"media_uuid"`
}

func (h *AlbumHandler) SetAlbumThumbnail(w http.ResponseWriter, r *http.Request) {
	album, level, ok := h.resolveAlbum(w, r)
	if !ok {
		return
	}
	if !level.CanWrite() {
		writeNotFound(w)
		return
	}

	var payload ThumbnailPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}

	var err error
	if payload.MediaUUID == nil {
		err = h.Albums.ClearThumbnail(album)
	} else {
		err = h.Albums.SetThumbnail(album, *payload.MediaUUID)
	}
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type InvitePayload struct {
	UserUUID    string `json:"user_uuid"`
	WriteAccess bool   `json:"write_access"`
}

func (h *AlbumHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	album, _, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	var payload InvitePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}

	invite, err := h.Albums.Invite(album, payload.UserUUID, payload.WriteAccess)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(invite)
}

func (h *AlbumHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	album, _, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	invites, err := h.Albums.ListInvites(album)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(invites)
}

func (h *AlbumHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	if err := h.Albums.AcceptInvite(chi.URLParam(r, "invite_uuid"), UserFromContext(r.Context())); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AlbumHandler) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	if err := h.Albums.RevokeInvite(chi.URLParam(r, "invite_uuid"), UserFromContext(r.Context())); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AlbumHandler) ListMyInvites(w http.ResponseWriter, r *http.Request) {
	invites, err := h.Albums.ListInvitesForUser(UserFromContext(r.Context()))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(invites)
}

type ShareLinkPayload struct {
	Password  *string    `json:"password,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (h *AlbumHandler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	album, _, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	var payload ShareLinkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}

	link, err := h.ShareLinks.Create(album, payload.Password, payload.ExpiresAt)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(link)
}

func (h *AlbumHandler) ListShareLinks(w http.ResponseWriter, r *http.Request) {
	album, _, ok := h.requireOwner(w, r)
	if !ok {
		return
	}

	links, err := h.ShareLinks.List(album)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(links)
}

func (h *AlbumHandler) DeleteShareLink(w http.ResponseWriter, r *http.Request) {
	if err := h.ShareLinks.Delete(chi.URLParam(r, "link_uuid"), UserFromContext(r.Context())); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSharedAlbum resolves an album from a public slug: the slug of a
// share link, or the album's own permanent link slug. Share-link
// access goes through the resolver; the permanent link is guarded by
// the album's own password, checked against the presented Basic
// credentials. Either way a failed check presents as not found.
func (h *AlbumHandler) GetSharedAlbum(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var album *models.Album
	viaAlbumSlug := false
	if link, err := h.ShareLinks.GetBySlug(slug); err == nil {
		album, err = h.Albums.GetByID(link.AlbumID)
		if err != nil {
			writeNotFound(w)
			return
		}
	} else if album, err = h.Albums.GetBySlug(slug); err != nil {
		writeNotFound(w)
		return
	} else {
		viaAlbumSlug = true
	}

	presented := PresentedFromContext(r.Context())
	if presented.ShareLinkSlug == "" {
		presented.ShareLinkSlug = slug
	}

	level, err := h.Resolver.Resolve(UserFromContext(r.Context()), album, presented)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	canRead := level.CanRead()
	if !canRead && viaAlbumSlug {
		canRead = album.CheckPassword(presented.Password)
	}
	if !canRead {
		writeNotFound(w)
		return
	}

	media, err := h.Albums.ListMedia(album)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"album": album,
		"media": media,
	})
}

// Favorites

func (h *AlbumHandler) FavoriteMedia(w http.ResponseWriter, r *http.Request) {
	if err := h.Albums.Favorite(UserFromContext(r.Context()), chi.URLParam(r, "media_uuid")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AlbumHandler) UnfavoriteMedia(w http.ResponseWriter, r *http.Request) {
	if err := h.Albums.Unfavorite(UserFromContext(r.Context()), chi.URLParam(r, "media_uuid")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AlbumHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	media, err := h.Albums.ListFavorites(UserFromContext(r.Context()))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(media)
}
