package repository

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/galeria-app/galeriabackend/models"
)

type GormMediaRepository struct {
	db *gorm.DB
}

func NewGormMediaRepository(db *gorm.DB) MediaRepository {
	return &GormMediaRepository{db: db}
}

func (r *GormMediaRepository) Create(media *models.Media) error {
	return translateError(r.db.Create(media).Error)
}

func (r *GormMediaRepository) GetByID(id uint) (*models.Media, error) {
	var media models.Media
	if err := r.db.First(&media, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &media, nil
}

func (r *GormMediaRepository) GetByUUID(uuid string) (*models.Media, error) {
	var media models.Media
	if err := r.db.Where("uuid = ?", uuid).First(&media).Error; err != nil {
		return nil, translateError(err)
	}
	return &media, nil
}

func (r *GormMediaRepository) GetByOwnerAndHash(ownerID uint, contentHash string) (*models.Media, error) {
	var media models.Media
	err := r.db.Where("owner_id = ? AND content_hash = ?", ownerID, contentHash).First(&media).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &media, nil
}

func (r *GormMediaRepository) ListByFolder(folderID uint) ([]models.Media, error) {
	var media []models.Media
	err := r.db.Where("folder_id = ?", folderID).Find(&media).Error
	return media, translateError(err)
}

func (r *GormMediaRepository) SetFolder(mediaID, folderID uint) error {
	return translateError(r.db.Model(&models.Media{}).Where("id = ?", mediaID).
		Update("folder_id", folderID).Error)
}

// Search runs the dynamic filter query. The SQL is assembled with
// squirrel so optional filters never turn into string concatenation.
func (r *GormMediaRepository) Search(ownerID uint, opts MediaSearchOptions) ([]models.Media, error) {
	queryBuilder := sq.Select("*").From("media").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("taken_at DESC, id DESC")

	if opts.FilenameContains != nil {
		queryBuilder = queryBuilder.Where(sq.Like{"filename": "%" + *opts.FilenameContains + "%"})
	}
	if opts.TakenAfter != nil {
		queryBuilder = queryBuilder.Where(sq.GtOrEq{"taken_at": *opts.TakenAfter})
	}
	if opts.TakenBefore != nil {
		queryBuilder = queryBuilder.Where(sq.Lt{"taken_at": *opts.TakenBefore})
	}
	if opts.FolderID != nil {
		queryBuilder = queryBuilder.Where(sq.Eq{"folder_id": *opts.FolderID})
	}

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for media search: %w", err)
	}

	var media []models.Media
	if err := r.db.Raw(sqlStr, args...).Scan(&media).Error; err != nil {
		return nil, translateError(err)
	}
	return media, nil
}

func (r *GormMediaRepository) Delete(id uint) error {
	return translateError(r.db.Delete(&models.Media{}, id).Error)
}

func (r *GormMediaRepository) Favorite(mediaID, userID uint) error {
	favorite := models.FavoriteMedia{MediaID: mediaID, UserID: userID}
	// avoid error if the bookmark already exists
	return translateError(r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error)
}

func (r *GormMediaRepository) Unfavorite(mediaID, userID uint) error {
	return translateError(r.db.Where("media_id = ? AND user_id = ?", mediaID, userID).
		Delete(&models.FavoriteMedia{}).Error)
}

func (r *GormMediaRepository) ListFavoritesByUser(userID uint) ([]models.Media, error) {
	var media []models.Media
	err := r.db.Joins("JOIN favorite_media ON favorite_media.media_id = media.id").
		Where("favorite_media.user_id = ?", userID).
		Find(&media).Error
	return media, translateError(err)
}
