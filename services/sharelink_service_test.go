package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/galeria-app/galeriabackend/apperrors"
	dbtesting "github.com/galeria-app/galeriabackend/database/testing"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/repository"
)

type shareLinkFixture struct {
	links  *ShareLinkService
	albums *AlbumService

	owner    *models.User
	stranger *models.User
	album    *models.Album
}

func newShareLinkFixture(t *testing.T) *shareLinkFixture {
	t.Helper()
	db := dbtesting.NewDB(t)
	users := repository.NewGormUserRepository(db)
	mediaRepo := repository.NewGormMediaRepository(db)
	albumRepo := repository.NewGormAlbumRepository(db)
	linkRepo := repository.NewGormShareLinkRepository(db)

	owner := &models.User{Username: "owner"}
	require.NoError(t, users.Create(owner))
	stranger := &models.User{Username: "stranger"}
	require.NoError(t, users.Create(stranger))

	albums := NewAlbumService(albumRepo, mediaRepo, users, 21, 5, bcrypt.MinCost)
	album, err := albums.Create(owner, "Trip", nil, nil)
	require.NoError(t, err)

	return &shareLinkFixture{
		links:    NewShareLinkService(linkRepo, albumRepo, 21, 5, bcrypt.MinCost),
		albums:   albums,
		owner:    owner,
		stranger: stranger,
		album:    album,
	}
}

func TestCreateShareLink(t *testing.T) {
	f := newShareLinkFixture(t)

	link, err := f.links.Create(f.album, nil, nil)
	require.NoError(t, err)
	require.Len(t, link.LinkSlug, 21)
	require.Nil(t, link.PasswordHash)
	require.Nil(t, link.ExpiresAt)
	require.False(t, link.IsExpired(time.Now().UTC()))

	fetched, err := f.links.GetBySlug(link.LinkSlug)
	require.NoError(t, err)
	require.Equal(t, link.UUID, fetched.UUID)
}

func TestCreateShareLinkWithPasswordAndExpiry(t *testing.T) {
	f := newShareLinkFixture(t)

	password := "sesame"
	expiry := time.Now().UTC().Add(time.Hour)
	link, err := f.links.Create(f.album, &password, &expiry)
	require.NoError(t, err)
	require.NotNil(t, link.PasswordHash)
	require.True(t, link.CheckPassword("sesame"))
	require.False(t, link.CheckPassword("wrong"))
	require.False(t, link.IsExpired(time.Now().UTC()))
	require.True(t, link.IsExpired(expiry))
	require.True(t, link.IsExpired(expiry.Add(time.Minute)))
}

func TestShareLinksAreIndependent(t *testing.T) {
	f := newShareLinkFixture(t)

	first, err := f.links.Create(f.album, nil, nil)
	require.NoError(t, err)
	second, err := f.links.Create(f.album, nil, nil)
	require.NoError(t, err)
	require.NotEqual(t, first.LinkSlug, second.LinkSlug)

	require.NoError(t, f.links.Delete(first.UUID, f.owner))

	_, err = f.links.GetByUUID(first.UUID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.links.GetByUUID(second.UUID)
	require.NoError(t, err)

	remaining, err := f.links.List(f.album)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
}

func TestDeleteShareLinkRequiresOwner(t *testing.T) {
	f := newShareLinkFixture(t)

	link, err := f.links.Create(f.album, nil, nil)
	require.NoError(t, err)

	require.ErrorIs(t, f.links.Delete(link.UUID, f.stranger), apperrors.ErrUnauthorized)
	require.NoError(t, f.links.Delete(link.UUID, f.owner))
	require.ErrorIs(t, f.links.Delete(link.UUID, f.owner), apperrors.ErrNotFound)
}

func TestDeleteAlbumCascadesShareLinks(t *testing.T) {
	f := newShareLinkFixture(t)

	link, err := f.links.Create(f.album, nil, nil)
	require.NoError(t, err)

	require.NoError(t, f.albums.Delete(f.album))

	_, err = f.links.GetByUUID(link.UUID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
