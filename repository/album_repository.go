package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/galeria-app/galeriabackend/models"
)

type GormAlbumRepository struct {
	db *gorm.DB
}

func NewGormAlbumRepository(db *gorm.DB) AlbumRepository {
	return &GormAlbumRepository{db: db}
}

func (r *GormAlbumRepository) Create(album *models.Album) error {
	return translateError(r.db.Create(album).Error)
}

func (r *GormAlbumRepository) GetByID(id uint) (*models.Album, error) {
	var album models.Album
	if err := r.db.First(&album, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &album, nil
}

func (r *GormAlbumRepository) GetByUUID(uuid string) (*models.Album, error) {
	var album models.Album
	if err := r.db.Where("uuid = ?", uuid).First(&album).Error; err != nil {
		return nil, translateError(err)
	}
	return &album, nil
}

func (r *GormAlbumRepository) GetBySlug(slug string) (*models.Album, error) {
	var album models.Album
	if err := r.db.Where("link_slug = ?", slug).First(&album).Error; err != nil {
		return nil, translateError(err)
	}
	return &album, nil
}

func (r *GormAlbumRepository) ListByOwner(ownerID uint) ([]models.Album, error) {
	var albums []models.Album
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&albums).Error
	return albums, translateError(err)
}

func (r *GormAlbumRepository) Update(albumID uint, name string, description *string) error {
	updates := map[string]interface{}{
		"name":        name,
		"description": description,
	}
	return translateError(r.db.Model(&models.Album{}).Where("id = ?", albumID).
		Updates(updates).Error)
}

func (r *GormAlbumRepository) SetThumbnail(albumID uint, mediaUUID *string) error {
	return translateError(r.db.Model(&models.Album{}).Where("id = ?", albumID).
		Update("thumbnail_media_uuid", mediaUUID).Error)
}

func (r *GormAlbumRepository) Delete(id uint) error {
	// membership, invites and share links fall via FK cascades
	return translateError(r.db.Delete(&models.Album{}, id).Error)
}

func (r *GormAlbumRepository) AddMedia(albumID, mediaID uint) error {
	entry := models.AlbumMedia{AlbumID: albumID, MediaID: mediaID}
	// membership is a set: inserting an existing pair is a no-op
	return translateError(r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error)
}

func (r *GormAlbumRepository) RemoveMedia(albumID, mediaID uint) error {
	return translateError(r.db.Where("album_id = ? AND media_id = ?", albumID, mediaID).
		Delete(&models.AlbumMedia{}).Error)
}

func (r *GormAlbumRepository) ListMedia(albumID uint) ([]models.Media, error) {
	var media []models.Media
	err := r.db.Joins("JOIN album_media ON album_media.media_id = media.id").
		Where("album_media.album_id = ?", albumID).
		Find(&media).Error
	return media, translateError(err)
}

func (r *GormAlbumRepository) CreateInvite(invite *models.AlbumInvite) error {
	return translateError(r.db.Create(invite).Error)
}

func (r *GormAlbumRepository) GetInviteByUUID(uuid string) (*models.AlbumInvite, error) {
	var invite models.AlbumInvite
	if err := r.db.Where("uuid = ?", uuid).First(&invite).Error; err != nil {
		return nil, translateError(err)
	}
	return &invite, nil
}

func (r *GormAlbumRepository) GetInvite(albumID, invitedUserID uint) (*models.AlbumInvite, error) {
	var invite models.AlbumInvite
	err := r.db.Where("album_id = ? AND invited_user_id = ?", albumID, invitedUserID).
		First(&invite).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &invite, nil
}

func (r *GormAlbumRepository) MarkInviteAccepted(inviteID uint) error {
	return translateError(r.db.Model(&models.AlbumInvite{}).Where("id = ?", inviteID).
		Update("accepted", true).Error)
}

func (r *GormAlbumRepository) DeleteInvite(inviteID uint) error {
	return translateError(r.db.Delete(&models.AlbumInvite{}, inviteID).Error)
}

func (r *GormAlbumRepository) ListInvitesByAlbum(albumID uint) ([]models.AlbumInvite, error) {
	var invites []models.AlbumInvite
	err := r.db.Where("album_id = ?", albumID).Find(&invites).Error
	return invites, translateError(err)
}

func (r *GormAlbumRepository) ListInvitesByUser(invitedUserID uint) ([]models.AlbumInvite, error) {
	var invites []models.AlbumInvite
	err := r.db.Where("invited_user_id = ?", invitedUserID).Find(&invites).Error
	return invites, translateError(err)
}
