package repository

import (
	"quest_nos_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) ListActive() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Where("is_active = ?", true).Order("name").Find(&subjects).Error
	return subjects, err
}
