package repository

import (
	"time"

	"quest_nos_backend/internal/model"

	"gorm.io/gorm"
)

type AdminUserRepository struct {
	DB *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{DB: db}
}

// adminLoginRow mirrors the result set of the verify_admin_login routine.
type adminLoginRow struct {
	ID           string          `gorm:"column:id"`
	FullName     string          `gorm:"column:full_name"`
	Email        string          `gorm:"column:email"`
	Role         model.AdminRole `gorm:"column:role"`
	IsActive     bool            `gorm:"column:is_active"`
	PasswordHash string          `gorm:"column:password_hash"`
}

// VerifyLogin runs the verify_admin_login routine, the single query surface
// for the login path. An empty slice means no account with that e-mail; the
// password comparison against the returned hash is the caller's job.
func (r *AdminUserRepository) VerifyLogin(email string) ([]model.AdminUser, error) {
	var rows []adminLoginRow
	err := r.DB.Raw("CALL verify_admin_login(?)", email).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	admins := make([]model.AdminUser, 0, len(rows))
	for _, row := range rows {
		admin := model.AdminUser{
			Email:        row.Email,
			FullName:     row.FullName,
			Role:         row.Role,
			IsActive:     row.IsActive,
			PasswordHash: row.PasswordHash,
		}
		admin.ID = row.ID
		admins = append(admins, admin)
	}
	return admins, nil
}

func (r *AdminUserRepository) UpdateLastLogin(id string) error {
	return r.DB.Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error
}
