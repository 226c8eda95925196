package repository

import (
	"gorm.io/gorm"

	"github.com/galeria-app/galeriabackend/models"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(user *models.User) error {
	return translateError(r.db.Create(user).Error)
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetByUUID(uuid string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetByFederatedIdentity(providerKey, subject string) (*models.User, error) {
	var identity models.FederatedIdentity
	err := r.db.Where("provider_key = ? AND subject = ?", providerKey, subject).First(&identity).Error
	if err != nil {
		return nil, translateError(err)
	}
	return r.GetByID(identity.UserID)
}

func (r *GormUserRepository) CreateWithFederatedIdentity(user *models.User, identity *models.FederatedIdentity) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		identity.UserID = user.ID
		return tx.Create(identity).Error
	})
	return translateError(err)
}

func (r *GormUserRepository) Delete(id uint) error {
	// federated identities and owned content fall via FK cascades
	return translateError(r.db.Delete(&models.User{}, id).Error)
}
