package repository

import (
	"quest_nos_backend/internal/model"

	"gorm.io/gorm"
)

type CandidateRepository struct {
	DB *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{DB: db}
}

func (r *CandidateRepository) Create(candidate *model.Candidate) error {
	return r.DB.Create(candidate).Error
}

func (r *CandidateRepository) Update(candidate *model.Candidate) error {
	return r.DB.Save(candidate).Error
}

func (r *CandidateRepository) FindByID(id string) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.DB.First(&candidate, "id = ?", id).Error
	return &candidate, err
}

// FindByEmail is the natural-key lookup behind the upsert. Returns
// gorm.ErrRecordNotFound when no candidate exists for the email.
func (r *CandidateRepository) FindByEmail(email string) (*model.Candidate, error) {
	var candidate model.Candidate
	err := r.DB.Where("email = ?", email).First(&candidate).Error
	return &candidate, err
}

// DeleteCascade removes a candidate and every dependent record: answers of the
// candidate's assessments, the assessments, then the candidate itself. One
// transaction; irreversible.
func (r *CandidateRepository) DeleteCascade(candidateID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var assessmentIDs []string
		if err := tx.Model(&model.Assessment{}).
			Where("candidate_id = ?", candidateID).
			Pluck("id", &assessmentIDs).Error; err != nil {
			return err
		}

		if len(assessmentIDs) > 0 {
			if err := tx.Where("assessment_id IN ?", assessmentIDs).
				Delete(&model.AssessmentAnswer{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("candidate_id = ?", candidateID).
			Delete(&model.Assessment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Candidate{}, "id = ?", candidateID).Error
	})
}
