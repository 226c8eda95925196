package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dbtesting "github.com/galeria-app/galeriabackend/database/testing"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/repository"
	"github.com/galeria-app/galeriabackend/services"
)

type mediaHandlerFixture struct {
	handler *MediaHandler
	svc     *services.MediaService

	user   *models.User
	other  *models.User
	folder *models.Folder
}

func newMediaHandlerFixture(t *testing.T) *mediaHandlerFixture {
	t.Helper()
	db := dbtesting.NewDB(t)
	users := repository.NewGormUserRepository(db)
	folders := repository.NewGormFolderRepository(db)
	media := repository.NewGormMediaRepository(db)

	user := &models.User{Username: "alice"}
	require.NoError(t, users.Create(user))
	other := &models.User{Username: "bob"}
	require.NoError(t, users.Create(other))

	svc := services.NewMediaService(folders, media, 64)
	folder, err := svc.CreateFolder(user, "photos", nil)
	require.NoError(t, err)

	return &mediaHandlerFixture{
		handler: NewMediaHandler(svc),
		svc:     svc,
		user:    user,
		other:   other,
		folder:  folder,
	}
}

func (f *mediaHandlerFixture) insertRequest(t *testing.T, actor *models.User, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/media", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), UserContextKey, actor))
	rec := httptest.NewRecorder()
	f.handler.InsertMedia(rec, req)
	return rec
}

func TestInsertMediaHandler(t *testing.T) {
	f := newMediaHandlerFixture(t)

	takenAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	body, err := json.Marshal(InsertMediaPayload{
		FolderUUID:  f.folder.UUID,
		ContentHash: strings.Repeat("a", 128),
		Filename:    "beach.jpg",
		Width:       800,
		Height:      600,
		TakenAt:     &takenAt,
	})
	require.NoError(t, err)

	rec := f.insertRequest(t, f.user, string(body))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Media
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "beach.jpg", created.Filename)
	require.True(t, takenAt.Equal(created.TakenAt))
}

func TestInsertMediaHandlerWithoutCaptureTime(t *testing.T) {
	f := newMediaHandlerFixture(t)

	body, err := json.Marshal(InsertMediaPayload{
		FolderUUID:  f.folder.UUID,
		ContentHash: strings.Repeat("b", 128),
		Filename:    "scan.png",
	})
	require.NoError(t, err)

	rec := f.insertRequest(t, f.user, string(body))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Media
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.True(t, created.TakenAt.IsZero())
}

func TestInsertMediaHandlerValidation(t *testing.T) {
	f := newMediaHandlerFixture(t)

	rec := f.insertRequest(t, f.user, `{"folder_uuid":"","content_hash":"","filename":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.insertRequest(t, f.user, `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsertMediaHandlerForeignFolder(t *testing.T) {
	f := newMediaHandlerFixture(t)

	body, err := json.Marshal(InsertMediaPayload{
		FolderUUID:  f.folder.UUID,
		ContentHash: strings.Repeat("c", 128),
		Filename:    "sneaky.jpg",
	})
	require.NoError(t, err)

	// someone else's folder presents as missing, not forbidden
	rec := f.insertRequest(t, f.other, string(body))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
