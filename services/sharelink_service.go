package services

import (
	"time"

	"github.com/galeria-app/galeriabackend/apperrors"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/repository"
)

// ShareLinkService manages the secondary access channels of an album.
// Each link is independently revocable and independently scoped by
// password and expiration, so access handed out through one link can
// be withdrawn without touching the album's permanent address or any
// other link.
type ShareLinkService struct {
	links  repository.ShareLinkRepository
	albums repository.AlbumRepository

	slugLength     int
	maxSlugRetries int
	hashCost       int
}

func NewShareLinkService(links repository.ShareLinkRepository, albums repository.AlbumRepository, slugLength, maxSlugRetries, hashCost int) *ShareLinkService {
	return &ShareLinkService{
		links:          links,
		albums:         albums,
		slugLength:     slugLength,
		maxSlugRetries: maxSlugRetries,
		hashCost:       hashCost,
	}
}

// Create issues a new share link for the album. The slug is generated
// with the same bounded collision-retry policy as album creation. A
// nil expiration means the link never expires.
func (s *ShareLinkService) Create(album *models.Album, password *string, expiresAt *time.Time) (*models.AlbumShareLink, error) {
	link := &models.AlbumShareLink{
		AlbumID:   album.ID,
		ExpiresAt: expiresAt,
	}
	if password != nil && *password != "" {
		if err := link.SetPassword(*password, s.hashCost); err != nil {
			return nil, err
		}
	}

	err := createWithSlugRetry(s.slugLength, s.maxSlugRetries, func(slug string) error {
		link.LinkSlug = slug
		return s.links.Create(link)
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (s *ShareLinkService) GetByUUID(uuid string) (*models.AlbumShareLink, error) {
	return s.links.GetByUUID(uuid)
}

func (s *ShareLinkService) GetBySlug(slug string) (*models.AlbumShareLink, error) {
	return s.links.GetBySlug(slug)
}

func (s *ShareLinkService) List(album *models.Album) ([]models.AlbumShareLink, error) {
	return s.links.ListByAlbum(album.ID)
}

// Delete revokes one link; other links on the same album keep
// working. Only the album owner may revoke.
func (s *ShareLinkService) Delete(linkUUID string, actor *models.User) error {
	link, err := s.links.GetByUUID(linkUUID)
	if err != nil {
		return err
	}
	album, err := s.albums.GetByID(link.AlbumID)
	if err != nil {
		return err
	}
	if album.OwnerID != actor.ID {
		return apperrors.ErrUnauthorized
	}
	return s.links.Delete(link.ID)
}
