package services

import (
	"sort"

	"github.com/facette/natsort"

	"github.com/galeria-app/galeriabackend/apperrors"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/repository"
)

// AlbumService owns the album graph: albums, membership, invites and
// favorites. Authorization is resolved by the caller; this service
// enforces structural invariants only.
type AlbumService struct {
	albums repository.AlbumRepository
	media  repository.MediaRepository
	users  repository.UserRepository

	slugLength     int
	maxSlugRetries int
	hashCost       int
}

func NewAlbumService(albums repository.AlbumRepository, media repository.MediaRepository, users repository.UserRepository, slugLength, maxSlugRetries, hashCost int) *AlbumService {
	return &AlbumService{
		albums:         albums,
		media:          media,
		users:          users,
		slugLength:     slugLength,
		maxSlugRetries: maxSlugRetries,
		hashCost:       hashCost,
	}
}

// Create makes a new album with a generated unique link slug,
// retrying slug collisions up to the configured bound.
func (s *AlbumService) Create(owner *models.User, name string, description *string, password *string) (*models.Album, error) {
	album := &models.Album{
		OwnerID:     owner.ID,
		Name:        name,
		Description: description,
	}
	if password != nil && *password != "" {
		if err := album.SetPassword(*password, s.hashCost); err != nil {
			return nil, err
		}
	}

	err := createWithSlugRetry(s.slugLength, s.maxSlugRetries, func(slug string) error {
		album.LinkSlug = slug
		return s.albums.Create(album)
	})
	if err != nil {
		return nil, err
	}
	return album, nil
}

func (s *AlbumService) GetByUUID(uuid string) (*models.Album, error) {
	return s.albums.GetByUUID(uuid)
}

func (s *AlbumService) GetByID(id uint) (*models.Album, error) {
	return s.albums.GetByID(id)
}

func (s *AlbumService) GetBySlug(slug string) (*models.Album, error) {
	return s.albums.GetBySlug(slug)
}

func (s *AlbumService) ListByOwner(ownerID uint) ([]models.Album, error) {
	return s.albums.ListByOwner(ownerID)
}

func (s *AlbumService) Update(album *models.Album, name string, description *string) error {
	return s.albums.Update(album.ID, name, description)
}

// Delete removes the album; membership rows, invites and share links
// go with it through the store cascade.
func (s *AlbumService) Delete(album *models.Album) error {
	return s.albums.Delete(album.ID)
}

// AddMedia inserts the (album, media) pair. Membership is a set, so
// re-adding an existing member is a no-op.
func (s *AlbumService) AddMedia(album *models.Album, mediaUUID string) error {
	media, err := s.media.GetByUUID(mediaUUID)
	if err != nil {
		return err
	}
	return s.albums.AddMedia(album.ID, media.ID)
}

func (s *AlbumService) RemoveMedia(album *models.Album, mediaUUID string) error {
	media, err := s.media.GetByUUID(mediaUUID)
	if err != nil {
		return err
	}
	return s.albums.RemoveMedia(album.ID, media.ID)
}

// ListMedia returns the album members in natural filename order.
func (s *AlbumService) ListMedia(album *models.Album) ([]models.Media, error) {
	media, err := s.albums.ListMedia(album.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(media, func(i, j int) bool {
		return natsort.Compare(media[i].Filename, media[j].Filename)
	})
	return media, nil
}

// SetThumbnail points the album thumbnail at a media item. The media
// must exist and belong to the album's owner; it does not have to be a
// member of the album.
func (s *AlbumService) SetThumbnail(album *models.Album, mediaUUID string) error {
	media, err := s.media.GetByUUID(mediaUUID)
	if err != nil {
		return err
	}
	if media.OwnerID != album.OwnerID {
		return apperrors.ErrUnauthorized
	}
	return s.albums.SetThumbnail(album.ID, &media.UUID)
}

func (s *AlbumService) ClearThumbnail(album *models.Album) error {
	return s.albums.SetThumbnail(album.ID, nil)
}

// Invite grants a user pending access to the album. The grant stays
// inert until the invited user accepts it.
func (s *AlbumService) Invite(album *models.Album, invitedUserUUID string, writeAccess bool) (*models.AlbumInvite, error) {
	invited, err := s.users.GetByUUID(invitedUserUUID)
	if err != nil {
		return nil, err
	}
	invite := &models.AlbumInvite{
		AlbumID:       album.ID,
		InvitedUserID: invited.ID,
		WriteAccess:   writeAccess,
	}
	if err := s.albums.CreateInvite(invite); err != nil {
		return nil, err
	}
	return invite, nil
}

// AcceptInvite flips the accepted flag. Only the invited user may
// accept.
func (s *AlbumService) AcceptInvite(inviteUUID string, actor *models.User) error {
	invite, err := s.albums.GetInviteByUUID(inviteUUID)
	if err != nil {
		return err
	}
	if invite.InvitedUserID != actor.ID {
		return apperrors.ErrUnauthorized
	}
	return s.albums.MarkInviteAccepted(invite.ID)
}

// RevokeInvite removes an invite regardless of acceptance state. Only
// the album owner may revoke.
func (s *AlbumService) RevokeInvite(inviteUUID string, actor *models.User) error {
	invite, err := s.albums.GetInviteByUUID(inviteUUID)
	if err != nil {
		return err
	}
	album, err := s.albums.GetByID(invite.AlbumID)
	if err != nil {
		return err
	}
	if album.OwnerID != actor.ID {
		return apperrors.ErrUnauthorized
	}
	return s.albums.DeleteInvite(invite.ID)
}

func (s *AlbumService) ListInvites(album *models.Album) ([]models.AlbumInvite, error) {
	return s.albums.ListInvitesByAlbum(album.ID)
}

func (s *AlbumService) ListInvitesForUser(user *models.User) ([]models.AlbumInvite, error) {
	return s.albums.ListInvitesByUser(user.ID)
}

// Favorite bookmarks a media item for the user. Favoriting twice is a
// no-op; favorites imply no ownership.
func (s *AlbumService) Favorite(actor *models.User, mediaUUID string) error {
	media, err := s.media.GetByUUID(mediaUUID)
	if err != nil {
		return err
	}
	return s.media.Favorite(media.ID, actor.ID)
}

func (s *AlbumService) Unfavorite(actor *models.User, mediaUUID string) error {
	media, err := s.media.GetByUUID(mediaUUID)
	if err != nil {
		return err
	}
	return s.media.Unfavorite(media.ID, actor.ID)
}

func (s *AlbumService) ListFavorites(actor *models.User) ([]models.Media, error) {
	return s.media.ListFavoritesByUser(actor.ID)
}
