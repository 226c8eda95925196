package repository

import (
	"time"

	"github.com/galeria-app/galeriabackend/models"
)

// UserRepository defines the methods for user and federated identity
// data operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUUID(uuid string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByFederatedIdentity(providerKey, subject string) (*models.User, error)
	// CreateWithFederatedIdentity inserts the user and its identity link
	// in a single transaction.
	CreateWithFederatedIdentity(user *models.User, identity *models.FederatedIdentity) error
	Delete(id uint) error
}

// TokenRepository defines the methods for refresh/access token data
// operations. Session-level mutations are single transactions.
type TokenRepository interface {
	CreateSession(refresh *models.RefreshToken, access *models.AccessToken) error
	CreateAccessToken(access *models.AccessToken) error
	GetRefreshTokenBySecret(secret string) (*models.RefreshToken, error)
	GetAccessTokenBySecret(secret string) (*models.AccessToken, error)
	// DeleteRefreshToken removes the refresh row; descendant access
	// tokens fall with it through the store cascade. Returns whether a
	// row was deleted.
	DeleteRefreshToken(id uint) (bool, error)
	// ReplaceSession atomically deletes the old refresh token and
	// inserts the new pair.
	ReplaceSession(oldRefreshID uint, refresh *models.RefreshToken, access *models.AccessToken) error
}

// FolderRepository defines the methods for folder tree data operations
type FolderRepository interface {
	Create(folder *models.Folder) error
	GetByID(id uint) (*models.Folder, error)
	GetByUUID(uuid string) (*models.Folder, error)
	ListRoots(ownerID uint) ([]models.Folder, error)
	ListChildren(folderID uint) ([]models.Folder, error)
	SetParent(folderID uint, parentID *uint) error
	Rename(folderID uint, name string) error
	Delete(id uint) error
}

// MediaSearchOptions are the optional filters of the media search
// query; nil fields are omitted from the generated SQL.
type MediaSearchOptions struct {
	FilenameContains *string
	TakenAfter       *time.Time
	TakenBefore      *time.Time
	FolderID         *uint
}

// MediaRepository defines the methods for media and favorite data
// operations
type MediaRepository interface {
	Create(media *models.Media) error
	GetByID(id uint) (*models.Media, error)
	GetByUUID(uuid string) (*models.Media, error)
	GetByOwnerAndHash(ownerID uint, contentHash string) (*models.Media, error)
	ListByFolder(folderID uint) ([]models.Media, error)
	SetFolder(mediaID, folderID uint) error
	Search(ownerID uint, opts MediaSearchOptions) ([]models.Media, error)
	Delete(id uint) error

	Favorite(mediaID, userID uint) error
	Unfavorite(mediaID, userID uint) error
	ListFavoritesByUser(userID uint) ([]models.Media, error)
}

// AlbumRepository defines the methods for album, membership and invite
// data operations
type AlbumRepository interface {
	Create(album *models.Album) error
	GetByID(id uint) (*models.Album, error)
	GetByUUID(uuid string) (*models.Album, error)
	GetBySlug(slug string) (*models.Album, error)
	ListByOwner(ownerID uint) ([]models.Album, error)
	Update(albumID uint, name string, description *string) error
	SetThumbnail(albumID uint, mediaUUID *string) error
	Delete(id uint) error

	AddMedia(albumID, mediaID uint) error
	RemoveMedia(albumID, mediaID uint) error
	ListMedia(albumID uint) ([]models.Media, error)

	CreateInvite(invite *models.AlbumInvite) error
	GetInviteByUUID(uuid string) (*models.AlbumInvite, error)
	GetInvite(albumID, invitedUserID uint) (*models.AlbumInvite, error)
	MarkInviteAccepted(inviteID uint) error
	DeleteInvite(inviteID uint) error
	ListInvitesByAlbum(albumID uint) ([]models.AlbumInvite, error)
	ListInvitesByUser(invitedUserID uint) ([]models.AlbumInvite, error)
}

// ShareLinkRepository defines the methods for album share link data
// operations
type ShareLinkRepository interface {
	Create(link *models.AlbumShareLink) error
	GetByUUID(uuid string) (*models.AlbumShareLink, error)
	GetBySlug(slug string) (*models.AlbumShareLink, error)
	ListByAlbum(albumID uint) ([]models.AlbumShareLink, error)
	Delete(id uint) error
}
