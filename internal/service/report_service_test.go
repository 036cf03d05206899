package service

import (
	"testing"

	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/util"

	"gorm.io/gorm"
)

type fakeReportStore struct {
	perf   []model.SubjectPerformance
	report *model.AssessmentDetailedReport
}

func (f *fakeReportStore) SubjectPerformance() ([]model.SubjectPerformance, error) {
	return f.perf, nil
}

func (f *fakeReportStore) DetailedReport(assessmentID string) (*model.AssessmentDetailedReport, error) {
	if f.report == nil || f.report.AssessmentID != assessmentID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.report, nil
}

func (f *fakeReportStore) SystemStats() (*model.SystemStats, error) {
	return &model.SystemStats{}, nil
}

func TestSubjectPerformanceCarriesLevel(t *testing.T) {
	svc := &ReportService{Repo: &fakeReportStore{perf: []model.SubjectPerformance{
		{SubjectID: "s1", SubjectName: "Soft Skills", AvgScore: 4.2},
		{SubjectID: "s2", SubjectName: "Lógica", AvgScore: 2.4},
	}}}

	entries, err := svc.SubjectPerformance()
	if err != nil {
		t.Fatalf("SubjectPerformance: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != 4 || entries[0].LevelName != "Avançado" {
		t.Errorf("entry 0: level %d %q, want 4 Avançado", entries[0].Level, entries[0].LevelName)
	}
	if entries[1].Level != 2 || entries[1].LevelName != "Básico" {
		t.Errorf("entry 1: level %d %q, want 2 Básico", entries[1].Level, entries[1].LevelName)
	}
	if entries[0].SubjectName != "Soft Skills" {
		t.Errorf("entry 0 lost subject fields: %+v", entries[0].SubjectPerformance)
	}
}

func TestDetailedReportCarriesLevel(t *testing.T) {
	svc := &ReportService{Repo: &fakeReportStore{report: &model.AssessmentDetailedReport{
		AssessmentID:    "a1",
		PercentageScore: 84,
	}}}

	entry, err := svc.DetailedReport("a1")
	if err != nil {
		t.Fatalf("DetailedReport: %v", err)
	}
	// 84% of the 1-5 scale is 4.2.
	if entry.Level != 4 || entry.LevelName != "Avançado" {
		t.Errorf("level %d %q, want 4 Avançado", entry.Level, entry.LevelName)
	}

	if _, err := svc.DetailedReport("missing"); err != util.ErrAssessmentNotFound {
		t.Errorf("missing assessment: err = %v, want ErrAssessmentNotFound", err)
	}
}

func TestScoreLevel(t *testing.T) {
	tests := []struct {
		avg  float64
		want int
	}{
		{5.0, 5},
		{4.999, 4},
		{4.0, 4},
		{3.5, 3},
		{3.0, 3},
		{2.999, 2},
		{2.0, 2},
		{1.999, 1},
		{1.0, 1},
		{0, 1},
	}

	for _, tt := range tests {
		if got := ScoreLevel(tt.avg); got != tt.want {
			t.Errorf("ScoreLevel(%v) = %d, want %d", tt.avg, got, tt.want)
		}
	}
}

func TestScoreLevelName(t *testing.T) {
	names := map[int]string{
		5: "Excelente",
		4: "Avançado",
		3: "Intermediário",
		2: "Básico",
		1: "Iniciante",
	}
	for level, want := range names {
		if got := ScoreLevelName(level); got != want {
			t.Errorf("ScoreLevelName(%d) = %q, want %q", level, got, want)
		}
	}
}
