package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/galeria-app/galeriabackend/auth"
	dbtesting "github.com/galeria-app/galeriabackend/database/testing"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/permissions"
	"github.com/galeria-app/galeriabackend/repository"
	"github.com/galeria-app/galeriabackend/services"
)

type sharedAlbumFixture struct {
	router http.Handler

	albums     *services.AlbumService
	shareLinks *services.ShareLinkService
	owner      *models.User
}

func newSharedAlbumFixture(t *testing.T) *sharedAlbumFixture {
	t.Helper()
	db := dbtesting.NewDB(t)
	users := repository.NewGormUserRepository(db)
	tokens := repository.NewGormTokenRepository(db)
	mediaRepo := repository.NewGormMediaRepository(db)
	albumRepo := repository.NewGormAlbumRepository(db)
	linkRepo := repository.NewGormShareLinkRepository(db)

	owner := &models.User{Username: "owner"}
	require.NoError(t, users.Create(owner))

	albums := services.NewAlbumService(albumRepo, mediaRepo, users, 21, 5, bcrypt.MinCost)
	shareLinks := services.NewShareLinkService(linkRepo, albumRepo, 21, 5, bcrypt.MinCost)
	issuer := auth.NewTokenIssuer(tokens, users, time.Hour, time.Minute)
	resolver := permissions.NewResolver(albumRepo, linkRepo)
	handler := NewAlbumHandler(albums, shareLinks, resolver)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return MixedAuthMiddleware(issuer, next)
	})
	r.Get("/api/shared/{slug}", handler.GetSharedAlbum)

	return &sharedAlbumFixture{
		router:     r,
		albums:     albums,
		shareLinks: shareLinks,
		owner:      owner,
	}
}

func (f *sharedAlbumFixture) get(t *testing.T, slug string, basicAuth *[2]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/shared/"+slug, nil)
	if basicAuth != nil {
		req.SetBasicAuth(basicAuth[0], basicAuth[1])
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestGetSharedAlbumByPermanentSlug(t *testing.T) {
	f := newSharedAlbumFixture(t)

	album, err := f.albums.Create(f.owner, "Trip", nil, nil)
	require.NoError(t, err)

	rec := f.get(t, album.LinkSlug, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Album models.Album   `json:"album"`
		Media []models.Media `json:"media"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, album.UUID, resp.Album.UUID)
}

func TestGetSharedAlbumPermanentSlugPassword(t *testing.T) {
	f := newSharedAlbumFixture(t)

	password := "sesame"
	album, err := f.albums.Create(f.owner, "Locked", nil, &password)
	require.NoError(t, err)

	// without and with a wrong password the album presents as missing
	rec := f.get(t, album.LinkSlug, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = f.get(t, album.LinkSlug, &[2]string{album.LinkSlug, "wrong"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.get(t, album.LinkSlug, &[2]string{album.LinkSlug, "sesame"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSharedAlbumByShareLink(t *testing.T) {
	f := newSharedAlbumFixture(t)

	password := "album-pass"
	album, err := f.albums.Create(f.owner, "Locked", nil, &password)
	require.NoError(t, err)
	link, err := f.shareLinks.Create(album, nil, nil)
	require.NoError(t, err)

	// an open share link does not require the album password
	rec := f.get(t, link.LinkSlug, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSharedAlbumByProtectedShareLink(t *testing.T) {
	f := newSharedAlbumFixture(t)

	album, err := f.albums.Create(f.owner, "Trip", nil, nil)
	require.NoError(t, err)
	linkPassword := "link-pass"
	link, err := f.shareLinks.Create(album, &linkPassword, nil)
	require.NoError(t, err)

	rec := f.get(t, link.LinkSlug, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = f.get(t, link.LinkSlug, &[2]string{link.LinkSlug, "link-pass"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSharedAlbumUnknownSlug(t *testing.T) {
	f := newSharedAlbumFixture(t)

	rec := f.get(t, "no-such-slug", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
