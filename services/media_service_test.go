package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/galeria-app/galeriabackend/apperrors"
	dbtesting "github.com/galeria-app/galeriabackend/database/testing"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/repository"
)

type mediaFixture struct {
	svc   *MediaService
	alice *models.User
	bob   *models.User
}

func newMediaFixture(t *testing.T) *mediaFixture {
	t.Helper()
	db := dbtesting.NewDB(t)
	users := repository.NewGormUserRepository(db)
	folders := repository.NewGormFolderRepository(db)
	media := repository.NewGormMediaRepository(db)

	alice := &models.User{Username: "alice"}
	require.NoError(t, users.Create(alice))
	bob := &models.User{Username: "bob"}
	require.NoError(t, users.Create(bob))

	return &mediaFixture{
		svc:   NewMediaService(folders, media, 64),
		alice: alice,
		bob:   bob,
	}
}

func (f *mediaFixture) folder(t *testing.T, owner *models.User, name string, parent *models.Folder) *models.Folder {
	t.Helper()
	var parentUUID *string
	if parent != nil {
		parentUUID = &parent.UUID
	}
	folder, err := f.svc.CreateFolder(owner, name, parentUUID)
	require.NoError(t, err)
	return folder
}

func (f *mediaFixture) insert(t *testing.T, owner *models.User, folder *models.Folder, filename, hash string) *models.Media {
	t.Helper()
	media, err := f.svc.InsertMedia(owner, folder.UUID, hash, models.MediaMetadata{
		Filename: filename,
		Width:    800,
		Height:   600,
		TakenAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	return media
}

func testHash(seed string) string {
	return strings.Repeat("0", 128-len(seed)) + seed
}

func TestCreateFolderUnderForeignParent(t *testing.T) {
	f := newMediaFixture(t)
	parent := f.folder(t, f.alice, "alice-root", nil)

	_, err := f.svc.CreateFolder(f.bob, "intruder", &parent.UUID)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestMoveFolderIntoOwnSubtree(t *testing.T) {
	f := newMediaFixture(t)
	a := f.folder(t, f.alice, "a", nil)
	b := f.folder(t, f.alice, "b", a)
	c := f.folder(t, f.alice, "c", b)

	// direct child and deeper descendant both form a cycle
	require.ErrorIs(t, f.svc.MoveFolder(a.UUID, &b.UUID), apperrors.ErrCycleRejected)
	require.ErrorIs(t, f.svc.MoveFolder(a.UUID, &c.UUID), apperrors.ErrCycleRejected)
	// a folder cannot become its own parent
	require.ErrorIs(t, f.svc.MoveFolder(a.UUID, &a.UUID), apperrors.ErrCycleRejected)
}

func TestMoveFolderToRootAndSibling(t *testing.T) {
	f := newMediaFixture(t)
	a := f.folder(t, f.alice, "a", nil)
	b := f.folder(t, f.alice, "b", a)
	c := f.folder(t, f.alice, "c", a)

	require.NoError(t, f.svc.MoveFolder(c.UUID, &b.UUID))
	require.NoError(t, f.svc.MoveFolder(b.UUID, nil))

	roots, err := f.svc.ListRootFolders(f.alice)
	require.NoError(t, err)
	require.Len(t, roots, 2)
}

func TestMoveFolderAcrossOwners(t *testing.T) {
	f := newMediaFixture(t)
	mine := f.folder(t, f.alice, "mine", nil)
	theirs := f.folder(t, f.bob, "theirs", nil)

	require.ErrorIs(t, f.svc.MoveFolder(mine.UUID, &theirs.UUID), apperrors.ErrUnauthorized)
}

func TestMoveFolderDepthBound(t *testing.T) {
	db := dbtesting.NewDB(t)
	users := repository.NewGormUserRepository(db)
	folders := repository.NewGormFolderRepository(db)
	media := repository.NewGormMediaRepository(db)
	svc := NewMediaService(folders, media, 3)

	owner := &models.User{Username: "deep"}
	require.NoError(t, users.Create(owner))

	var parentUUID *string
	var leaf *models.Folder
	for i := 0; i < 5; i++ {
		folder, err := svc.CreateFolder(owner, "level", parentUUID)
		require.NoError(t, err)
		parentUUID = &folder.UUID
		leaf = folder
	}
	loner, err := svc.CreateFolder(owner, "loner", nil)
	require.NoError(t, err)

	// the ancestor walk cannot terminate within the bound
	require.ErrorIs(t, svc.MoveFolder(loner.UUID, &leaf.UUID), apperrors.ErrCycleRejected)
}

func TestInsertMediaDeduplicates(t *testing.T) {
	f := newMediaFixture(t)
	folder := f.folder(t, f.alice, "photos", nil)
	other := f.folder(t, f.alice, "copies", nil)

	first := f.insert(t, f.alice, folder, "beach.jpg", testHash("1"))

	// identical content resolves to the same logical record, even when
	// aimed at a different folder
	again, err := f.svc.InsertMedia(f.alice, other.UUID, testHash("1"), models.MediaMetadata{Filename: "beach-copy.jpg"})
	require.NoError(t, err)
	require.Equal(t, first.UUID, again.UUID)
	require.Equal(t, first.FolderID, again.FolderID)
}

func TestInsertMediaSameHashDifferentOwners(t *testing.T) {
	f := newMediaFixture(t)
	aliceFolder := f.folder(t, f.alice, "photos", nil)
	bobFolder := f.folder(t, f.bob, "photos", nil)

	a := f.insert(t, f.alice, aliceFolder, "beach.jpg", testHash("1"))
	b := f.insert(t, f.bob, bobFolder, "beach.jpg", testHash("1"))
	require.NotEqual(t, a.UUID, b.UUID)
}

func TestInsertMediaIntoForeignFolder(t *testing.T) {
	f := newMediaFixture(t)
	theirs := f.folder(t, f.bob, "theirs", nil)

	_, err := f.svc.InsertMedia(f.alice, theirs.UUID, testHash("1"), models.MediaMetadata{Filename: "x.jpg"})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestListFolderNaturalOrder(t *testing.T) {
	f := newMediaFixture(t)
	folder := f.folder(t, f.alice, "photos", nil)

	f.insert(t, f.alice, folder, "img10.png", testHash("a"))
	f.insert(t, f.alice, folder, "img2.png", testHash("b"))
	f.insert(t, f.alice, folder, "img1.png", testHash("c"))

	listing, err := f.svc.ListFolder(folder.UUID)
	require.NoError(t, err)
	require.Len(t, listing.Media, 3)
	require.Equal(t, "img1.png", listing.Media[0].Filename)
	require.Equal(t, "img2.png", listing.Media[1].Filename)
	require.Equal(t, "img10.png", listing.Media[2].Filename)
}

func TestMoveMediaAcrossOwners(t *testing.T) {
	f := newMediaFixture(t)
	folder := f.folder(t, f.alice, "photos", nil)
	theirs := f.folder(t, f.bob, "theirs", nil)
	media := f.insert(t, f.alice, folder, "beach.jpg", testHash("1"))

	require.ErrorIs(t, f.svc.MoveMedia(media.UUID, theirs.UUID), apperrors.ErrUnauthorized)

	mine := f.folder(t, f.alice, "sorted", nil)
	require.NoError(t, f.svc.MoveMedia(media.UUID, mine.UUID))
	moved, err := f.svc.GetMediaByUUID(media.UUID)
	require.NoError(t, err)
	require.Equal(t, mine.ID, moved.FolderID)
}

func TestDeleteFolderCascadesMedia(t *testing.T) {
	f := newMediaFixture(t)
	folder := f.folder(t, f.alice, "photos", nil)
	sub := f.folder(t, f.alice, "sub", folder)
	media := f.insert(t, f.alice, sub, "beach.jpg", testHash("1"))

	require.NoError(t, f.svc.DeleteFolder(folder.UUID))

	_, err := f.svc.GetFolderByUUID(sub.UUID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.svc.GetMediaByUUID(media.UUID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSearchMedia(t *testing.T) {
	f := newMediaFixture(t)
	folder := f.folder(t, f.alice, "photos", nil)
	otherFolder := f.folder(t, f.alice, "misc", nil)

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.InsertMedia(f.alice, folder.UUID, testHash("1"), models.MediaMetadata{Filename: "beach-sunset.jpg", TakenAt: old})
	require.NoError(t, err)
	_, err = f.svc.InsertMedia(f.alice, folder.UUID, testHash("2"), models.MediaMetadata{Filename: "mountain.jpg", TakenAt: recent})
	require.NoError(t, err)
	_, err = f.svc.InsertMedia(f.alice, otherFolder.UUID, testHash("3"), models.MediaMetadata{Filename: "beach-morning.jpg", TakenAt: recent})
	require.NoError(t, err)

	// other users' media never leaks into results
	bobFolder := f.folder(t, f.bob, "photos", nil)
	f.insert(t, f.bob, bobFolder, "beach-bob.jpg", testHash("4"))

	needle := "beach"
	results, err := f.svc.SearchMedia(f.alice, repository.MediaSearchOptions{FilenameContains: &needle})
	require.NoError(t, err)
	require.Len(t, results, 2)

	after := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	results, err = f.svc.SearchMedia(f.alice, repository.MediaSearchOptions{FilenameContains: &needle, TakenAfter: &after})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "beach-morning.jpg", results[0].Filename)

	results, err = f.svc.SearchMedia(f.alice, repository.MediaSearchOptions{FolderID: &folder.ID})
	require.NoError(t, err)
	require.Len(t, results, 2)
}
