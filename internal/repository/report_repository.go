package repository

import (
	"quest_nos_backend/internal/model"
	"quest_nos_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportRepository is the read side of the dashboard. It prefers the
// pre-aggregated views provisioned next to the tables and degrades to direct
// scans with zeroed statistics when a view is missing. It performs no writes.
type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) CandidateSummaries() ([]model.CandidateSummary, error) {
	var summaries []model.CandidateSummary
	err := r.DB.Table("candidate_summary").
		Order("registration_date desc").
		Scan(&summaries).Error
	if err == nil {
		return summaries, nil
	}

	logger.Log.Warn("candidate_summary view unavailable, falling back to direct scan", zap.Error(err))

	var candidates []model.Candidate
	if err := r.DB.Order("created_at desc").Find(&candidates).Error; err != nil {
		return nil, err
	}

	summaries = make([]model.CandidateSummary, len(candidates))
	for i, c := range candidates {
		summaries[i] = model.CandidateSummary{
			ID:               c.ID,
			FullName:         c.FullName,
			Email:            c.Email,
			Phone:            c.Phone,
			EducationLevel:   c.EducationLevel,
			ExperienceYears:  c.ExperienceYears,
			RegistrationDate: c.CreatedAt,
			// Aggregates are not cheaply derivable here; degraded mode
			// returns them zeroed.
		}
	}
	return summaries, nil
}

func (r *ReportRepository) SubjectPerformance() ([]model.SubjectPerformance, error) {
	var perf []model.SubjectPerformance
	err := r.DB.Table("subject_performance").
		Order("avg_score desc").
		Scan(&perf).Error
	if err == nil {
		return perf, nil
	}

	logger.Log.Warn("subject_performance view unavailable, falling back to direct scan", zap.Error(err))

	var subjects []model.Subject
	if err := r.DB.Where("is_active = ?", true).Order("name").Find(&subjects).Error; err != nil {
		return nil, err
	}

	perf = make([]model.SubjectPerformance, len(subjects))
	for i, s := range subjects {
		perf[i] = model.SubjectPerformance{
			SubjectID:          s.ID,
			SubjectName:        s.Name,
			SubjectDescription: s.Description,
			SubjectWeight:      s.Weight,
		}
	}
	return perf, nil
}

func (r *ReportRepository) DetailedReport(assessmentID string) (*model.AssessmentDetailedReport, error) {
	var report model.AssessmentDetailedReport
	err := r.DB.Table("assessment_detailed_report").
		Where("assessment_id = ?", assessmentID).
		Scan(&report).Error
	if err != nil {
		return nil, err
	}
	if report.AssessmentID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &report, nil
}

func (r *ReportRepository) SystemStats() (*model.SystemStats, error) {
	var stats model.SystemStats

	if err := r.DB.Model(&model.Candidate{}).Count(&stats.TotalCandidates).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Assessment{}).Count(&stats.TotalAssessments).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Assessment{}).
		Where("completed_at IS NOT NULL").
		Count(&stats.CompletedAssessments).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.AssessmentAnswer{}).
		Distinct("question_number").
		Count(&stats.TotalQuestions).Error; err != nil {
		return nil, err
	}

	if stats.TotalAssessments > 0 {
		stats.CompletionRate = int(float64(stats.CompletedAssessments) / float64(stats.TotalAssessments) * 100)
	}
	return &stats, nil
}
