package repository

import (
	"quest_nos_backend/internal/model"

	"gorm.io/gorm"
)

type BrandingRepository struct {
	DB *gorm.DB
}

func NewBrandingRepository(db *gorm.DB) *BrandingRepository {
	return &BrandingRepository{DB: db}
}

// Active returns the single active branding row, newest first.
func (r *BrandingRepository) Active() (*model.ClientBranding, error) {
	var branding model.ClientBranding
	err := r.DB.Where("is_active = ?", true).
		Order("created_at desc").
		First(&branding).Error
	if err != nil {
		return nil, err
	}
	return &branding, nil
}

// Save deactivates any previous configuration and inserts the new one as the
// active row, in one transaction.
func (r *BrandingRepository) Save(branding *model.ClientBranding) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ClientBranding{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		branding.IsActive = true
		return tx.Create(branding).Error
	})
}
