package model

import "time"

type AdminRole string

const (
	Admin      AdminRole = "admin"
	SuperAdmin AdminRole = "super_admin"
)

// swagger:model AdminUser
type AdminUser struct {
	UUIDBase
	Email        string    `gorm:"size:255;unique;not null" json:"email"`
	FullName     string    `gorm:"size:255;not null" json:"fullName"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         AdminRole `gorm:"type:enum('admin','super_admin');default:'admin'" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	LastLogin    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
