package repository

import (
	"gorm.io/gorm"

	"github.com/galeria-app/galeriabackend/models"
)

type GormFolderRepository struct {
	db *gorm.DB
}

func NewGormFolderRepository(db *gorm.DB) FolderRepository {
	return &GormFolderRepository{db: db}
}

func (r *GormFolderRepository) Create(folder *models.Folder) error {
	return translateError(r.db.Create(folder).Error)
}

func (r *GormFolderRepository) GetByID(id uint) (*models.Folder, error) {
	var folder models.Folder
	if err := r.db.First(&folder, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &folder, nil
}

func (r *GormFolderRepository) GetByUUID(uuid string) (*models.Folder, error) {
	var folder models.Folder
	if err := r.db.Where("uuid = ?", uuid).First(&folder).Error; err != nil {
		return nil, translateError(err)
	}
	return &folder, nil
}

func (r *GormFolderRepository) ListRoots(ownerID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := r.db.Where("owner_id = ? AND parent_id IS NULL", ownerID).Find(&folders).Error
	return folders, translateError(err)
}

func (r *GormFolderRepository) ListChildren(folderID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := r.db.Where("parent_id = ?", folderID).Find(&folders).Error
	return folders, translateError(err)
}

func (r *GormFolderRepository) SetParent(folderID uint, parentID *uint) error {
	return translateError(r.db.Model(&models.Folder{}).Where("id = ?", folderID).
		Update("parent_id", parentID).Error)
}

func (r *GormFolderRepository) Rename(folderID uint, name string) error {
	return translateError(r.db.Model(&models.Folder{}).Where("id = ?", folderID).
		Update("name", name).Error)
}

func (r *GormFolderRepository) Delete(id uint) error {
	// subtree folders and contained media fall via FK cascades
	return translateError(r.db.Delete(&models.Folder{}, id).Error)
}
