package repository

import (
	"gorm.io/gorm"

	"github.com/galeria-app/galeriabackend/models"
)

type GormShareLinkRepository struct {
	db *gorm.DB
}

func NewGormShareLinkRepository(db *gorm.DB) ShareLinkRepository {
	return &GormShareLinkRepository{db: db}
}

func (r *GormShareLinkRepository) Create(link *models.AlbumShareLink) error {
	return translateError(r.db.Create(link).Error)
}

func (r *GormShareLinkRepository) GetByUUID(uuid string) (*models.AlbumShareLink, error) {
	var link models.AlbumShareLink
	if err := r.db.Where("uuid = ?", uuid).First(&link).Error; err != nil {
		return nil, translateError(err)
	}
	return &link, nil
}

func (r *GormShareLinkRepository) GetBySlug(slug string) (*models.AlbumShareLink, error) {
	var link models.AlbumShareLink
	if err := r.db.Where("link_slug = ?", slug).First(&link).Error; err != nil {
		return nil, translateError(err)
	}
	return &link, nil
}

func (r *GormShareLinkRepository) ListByAlbum(albumID uint) ([]models.AlbumShareLink, error) {
	var links []models.AlbumShareLink
	err := r.db.Where("album_id = ?", albumID).Find(&links).Error
	return links, translateError(err)
}

func (r *GormShareLinkRepository) Delete(id uint) error {
	return translateError(r.db.Delete(&models.AlbumShareLink{}, id).Error)
}
