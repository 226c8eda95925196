package repository

import (
	"gorm.io/gorm"

	"github.com/galeria-app/galeriabackend/models"
)

type GormTokenRepository struct {
	db *gorm.DB
}

func NewGormTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

func (r *GormTokenRepository) CreateSession(refresh *models.RefreshToken, access *models.AccessToken) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(refresh).Error; err != nil {
			return err
		}
		access.RefreshTokenID = refresh.ID
		return tx.Create(access).Error
	})
	return translateError(err)
}

func (r *GormTokenRepository) CreateAccessToken(access *models.AccessToken) error {
	return translateError(r.db.Create(access).Error)
}

func (r *GormTokenRepository) GetRefreshTokenBySecret(secret string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.db.Where("secret = ?", secret).First(&token).Error; err != nil {
		return nil, translateError(err)
	}
	return &token, nil
}

func (r *GormTokenRepository) GetAccessTokenBySecret(secret string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.db.Preload("RefreshToken").Where("secret = ?", secret).First(&token).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &token, nil
}

func (r *GormTokenRepository) DeleteRefreshToken(id uint) (bool, error) {
	res := r.db.Delete(&models.RefreshToken{}, id)
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormTokenRepository) ReplaceSession(oldRefreshID uint, refresh *models.RefreshToken, access *models.AccessToken) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.RefreshToken{}, oldRefreshID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Create(refresh).Error; err != nil {
			return err
		}
		access.RefreshTokenID = refresh.ID
		return tx.Create(access).Error
	})
	return translateError(err)
}
