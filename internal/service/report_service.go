package service

import (
	"errors"
	"fmt"

	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/repository"
	"quest_nos_backend/internal/util"
	"quest_nos_backend/pkg/retry"

	"gorm.io/gorm"
)

// reportStore is the slice of ReportRepository the service reads from.
type reportStore interface {
	SubjectPerformance() ([]model.SubjectPerformance, error)
	DetailedReport(assessmentID string) (*model.AssessmentDetailedReport, error)
	SystemStats() (*model.SystemStats, error)
}

// ReportService is the read side of the admin dashboard. It performs no
// writes; degraded view fallbacks live in the repository.
type ReportService struct {
	Repo reportStore
}

func NewReportService(repo *repository.ReportRepository) *ReportService {
	return &ReportService{Repo: repo}
}

// SubjectPerformanceEntry is one subject row with its qualitative tier
// derived from the 1-5 average score.
type SubjectPerformanceEntry struct {
	model.SubjectPerformance
	Level     int    `json:"level"`
	LevelName string `json:"levelName"`
}

func (s *ReportService) SubjectPerformance() ([]SubjectPerformanceEntry, error) {
	rows, err := retry.Do(s.Repo.SubjectPerformance, retry.Default)
	if err != nil {
		return nil, err
	}

	entries := make([]SubjectPerformanceEntry, len(rows))
	for i, row := range rows {
		level := ScoreLevel(row.AvgScore)
		entries[i] = SubjectPerformanceEntry{
			SubjectPerformance: row,
			Level:              level,
			LevelName:          ScoreLevelName(level),
		}
	}
	return entries, nil
}

func (s *ReportService) SystemStats() (*model.SystemStats, error) {
	return retry.Do(s.Repo.SystemStats, retry.Default)
}

// DetailedReportEntry carries one assessment's report plus its qualitative
// tier. The percentage maps back to the 1-5 scale (5 is the maximum score
// per answer) before classification.
type DetailedReportEntry struct {
	model.AssessmentDetailedReport
	Level     int    `json:"level"`
	LevelName string `json:"levelName"`
}

func (s *ReportService) DetailedReport(assessmentID string) (*DetailedReportEntry, error) {
	report, err := s.Repo.DetailedReport(assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar relatório: %w", err)
	}

	level := ScoreLevel(report.PercentageScore / 100 * 5)
	return &DetailedReportEntry{
		AssessmentDetailedReport: *report,
		Level:                    level,
		LevelName:                ScoreLevelName(level),
	}, nil
}

// ScoreLevel maps a 1-5 average score into the qualitative tier used by the
// dashboard. Boundaries are inclusive on the lower side of each tier.
func ScoreLevel(avgScore float64) int {
	switch {
	case avgScore >= 5.0:
		return 5
	case avgScore >= 4.0:
		return 4
	case avgScore >= 3.0:
		return 3
	case avgScore >= 2.0:
		return 2
	default:
		return 1
	}
}

// ScoreLevelName is the Portuguese label for a qualitative tier.
func ScoreLevelName(level int) string {
	switch level {
	case 5:
		return "Excelente"
	case 4:
		return "Avançado"
	case 3:
		return "Intermediário"
	case 2:
		return "Básico"
	default:
		return "Iniciante"
	}
}
