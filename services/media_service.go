package services

import (
	"errors"
	"sort"

	"github.com/facette/natsort"

	"github.com/galeria-app/galeriabackend/apperrors"
	"github.com/galeria-app/galeriabackend/models"
	"github.com/galeria-app/galeriabackend/repository"
)

// MediaService is the content index: the folder tree and the media
// records inside it. Raw bytes never pass through here; media is
// identified by the content hash the blob store reported.
type MediaService struct {
	folders repository.FolderRepository
	media   repository.MediaRepository

	maxFolderDepth int
}

func NewMediaService(folders repository.FolderRepository, media repository.MediaRepository, maxFolderDepth int) *MediaService {
	return &MediaService{folders: folders, media: media, maxFolderDepth: maxFolderDepth}
}

// CreateFolder adds a node under parent (nil parent makes a root).
func (s *MediaService) CreateFolder(owner *models.User, name string, parentUUID *string) (*models.Folder, error) {
	folder := &models.Folder{OwnerID: owner.ID, Name: name}
	if parentUUID != nil {
		parent, err := s.folders.GetByUUID(*parentUUID)
		if err != nil {
			return nil, err
		}
		if parent.OwnerID != owner.ID {
			return nil, apperrors.ErrUnauthorized
		}
		folder.ParentID = &parent.ID
	}
	if err := s.folders.Create(folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (s *MediaService) GetFolderByUUID(uuid string) (*models.Folder, error) {
	return s.folders.GetByUUID(uuid)
}

// MoveFolder reparents a folder. A nil newParentUUID makes it a root.
// The prospective ancestor chain of the target parent is walked up to
// the configured depth bound; if the moved folder appears in it, or
// the chain does not terminate within the bound, the move is rejected
// with ErrCycleRejected.
func (s *MediaService) MoveFolder(folderUUID string, newParentUUID *string) error {
	folder, err := s.folders.GetByUUID(folderUUID)
	if err != nil {
		return err
	}

	if newParentUUID == nil {
		return s.folders.SetParent(folder.ID, nil)
	}

	newParent, err := s.folders.GetByUUID(*newParentUUID)
	if err != nil {
		return err
	}
	if newParent.OwnerID != folder.OwnerID {
		return apperrors.ErrUnauthorized
	}
	if err := s.checkNoCycle(folder.ID, newParent); err != nil {
		return err
	}
	return s.folders.SetParent(folder.ID, &newParent.ID)
}

// checkNoCycle walks from candidate towards the root and fails if
// folderID occurs in the chain.
func (s *MediaService) checkNoCycle(folderID uint, candidate *models.Folder) error {
	node := candidate
	for depth := 0; depth < s.maxFolderDepth; depth++ {
		if node.ID == folderID {
			return apperrors.ErrCycleRejected
		}
		if node.ParentID == nil {
			return nil
		}
		parent, err := s.folders.GetByID(*node.ParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// dangling parent, treat the chain as unverifiable
				return apperrors.ErrCycleRejected
			}
			return err
		}
		node = parent
	}
	// chain did not terminate within the bound
	return apperrors.ErrCycleRejected
}

func (s *MediaService) RenameFolder(folderUUID, name string) error {
	folder, err := s.folders.GetByUUID(folderUUID)
	if err != nil {
		return err
	}
	return s.folders.Rename(folder.ID, name)
}

// DeleteFolder removes the folder; the subtree and its media fall via
// the store cascade.
func (s *MediaService) DeleteFolder(folderUUID string) error {
	folder, err := s.folders.GetByUUID(folderUUID)
	if err != nil {
		return err
	}
	return s.folders.Delete(folder.ID)
}

// FolderListing is one folder's direct contents.
type FolderListing struct {
	Folder     models.Folder   `json:"folder"`
	Subfolders []models.Folder `json:"subfolders"`
	Media      []models.Media  `json:"media"`
}

// ListFolder returns the folder's children and media, media in
// natural filename order.
func (s *MediaService) ListFolder(folderUUID string) (*FolderListing, error) {
	folder, err := s.folders.GetByUUID(folderUUID)
	if err != nil {
		return nil, err
	}
	children, err := s.folders.ListChildren(folder.ID)
	if err != nil {
		return nil, err
	}
	media, err := s.media.ListByFolder(folder.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(media, func(i, j int) bool {
		return natsort.Compare(media[i].Filename, media[j].Filename)
	})
	return &FolderListing{Folder: *folder, Subfolders: children, Media: media}, nil
}

func (s *MediaService) ListRootFolders(owner *models.User) ([]models.Folder, error) {
	return s.folders.ListRoots(owner.ID)
}

// InsertMedia indexes an uploaded file. Media with an identical
// (owner, content hash) pair resolves to the one existing logical
// record; the unique index backstops concurrent inserts of the same
// content.
func (s *MediaService) InsertMedia(owner *models.User, folderUUID, contentHash string, meta models.MediaMetadata) (*models.Media, error) {
	folder, err := s.folders.GetByUUID(folderUUID)
	if err != nil {
		return nil, err
	}
	if folder.OwnerID != owner.ID {
		return nil, apperrors.ErrUnauthorized
	}

	if existing, err := s.media.GetByOwnerAndHash(owner.ID, contentHash); err == nil {
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	media := &models.Media{
		Filename:    meta.Filename,
		FolderID:    folder.ID,
		OwnerID:     owner.ID,
		Width:       meta.Width,
		Height:      meta.Height,
		Description: meta.Description,
		TakenAt:     meta.TakenAt,
		ContentHash: contentHash,
	}
	if err := s.media.Create(media); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// a concurrent upload of the same content won the race
			return s.media.GetByOwnerAndHash(owner.ID, contentHash)
		}
		return nil, err
	}
	return media, nil
}

func (s *MediaService) GetMediaByUUID(uuid string) (*models.Media, error) {
	return s.media.GetByUUID(uuid)
}

// MoveMedia requires the destination folder to belong to the media
// owner.
func (s *MediaService) MoveMedia(mediaUUID, newFolderUUID string) error {
	media, err := s.media.GetByUUID(mediaUUID)
	if err != nil {
		return err
	}
	folder, err := s.folders.GetByUUID(newFolderUUID)
	if err != nil {
		return err
	}
	if folder.OwnerID != media.OwnerID {
		return apperrors.ErrUnauthorized
	}
	return s.media.SetFolder(media.ID, folder.ID)
}

func (s *MediaService) DeleteMedia(mediaUUID string) error {
	media, err := s.media.GetByUUID(mediaUUID)
	if err != nil {
		return err
	}
	return s.media.Delete(media.ID)
}

// SearchMedia runs the owner-scoped dynamic filter query.
func (s *MediaService) SearchMedia(owner *models.User, opts repository.MediaSearchOptions) ([]models.Media, error) {
	return s.media.Search(owner.ID, opts)
}
