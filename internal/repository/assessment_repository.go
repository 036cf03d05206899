package repository

import (
	"time"

	"quest_nos_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// ScoreResult is the row returned by the calculate_assessment_score routine.
type ScoreResult struct {
	TotalScore      float64 `gorm:"column:total_score"`
	PercentageScore float64 `gorm:"column:percentage_score"`
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

func (r *AssessmentRepository) FindByID(id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, "id = ?", id).Error
	return &a, err
}

func (r *AssessmentRepository) ListByCandidate(candidateID string) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Where("candidate_id = ?", candidateID).
		Order("created_at desc").
		Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) InsertAnswers(answers []model.AssessmentAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(answers, 100).Error
}

func (r *AssessmentRepository) AnswersByAssessment(assessmentID string) ([]model.AssessmentAnswer, error) {
	var answers []model.AssessmentAnswer
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("question_number asc").
		Find(&answers).Error
	return answers, err
}

// ComputeScore invokes the remote scoring routine for one assessment. The
// routine aggregates the assessment's answers server-side.
func (r *AssessmentRepository) ComputeScore(assessmentID string) (ScoreResult, error) {
	var result ScoreResult
	err := r.DB.Raw("CALL calculate_assessment_score(?)", assessmentID).Scan(&result).Error
	return result, err
}

// Complete transitions an assessment to completed with its final scores.
func (r *AssessmentRepository) Complete(a *model.Assessment, score ScoreResult, timeSpentMinutes int) error {
	now := time.Now()
	a.Status = model.AssessmentCompleted
	a.CompletedAt = &now
	a.TotalScore = &score.TotalScore
	a.PercentageScore = &score.PercentageScore
	a.TimeSpentMin = timeSpentMinutes
	return r.DB.Model(a).Updates(map[string]interface{}{
		"status":             a.Status,
		"completed_at":       a.CompletedAt,
		"total_score":        a.TotalScore,
		"percentage_score":   a.PercentageScore,
		"time_spent_minutes": a.TimeSpentMin,
	}).Error
}

// WithTx returns a repository bound to one transaction so answer persistence
// and the completion update of a submission commit or roll back together.
func (r *AssessmentRepository) WithTx(fn func(txRepo *AssessmentRepository) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&AssessmentRepository{DB: tx})
	})
}

// MarkStaleAbandoned moves in_progress assessments started before cutoff to
// abandoned. Returns the number of rows swept.
func (r *AssessmentRepository) MarkStaleAbandoned(cutoff time.Time) (int64, error) {
	res := r.DB.Model(&model.Assessment{}).
		Where("status = ? AND started_at < ?", model.AssessmentInProgress, cutoff).
		Update("status", model.AssessmentAbandoned)
	return res.RowsAffected, res.Error
}
