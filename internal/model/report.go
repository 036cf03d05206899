package model

import "time"

// Read models scanned from the reporting views (or computed by the degraded
// fallbacks when a view is not provisioned). Never written by this service.

type CandidateSummary struct {
	ID                   string     `gorm:"column:id" json:"id"`
	FullName             string     `gorm:"column:full_name" json:"fullName"`
	Email                string     `gorm:"column:email" json:"email"`
	Phone                string     `gorm:"column:phone" json:"phone,omitempty"`
	EducationLevel       string     `gorm:"column:education_level" json:"educationLevel,omitempty"`
	ExperienceYears      int        `gorm:"column:experience_years" json:"experienceYears"`
	RegistrationDate     time.Time  `gorm:"column:registration_date" json:"registrationDate"`
	TotalAssessments     int        `gorm:"column:total_assessments" json:"totalAssessments"`
	CompletedAssessments int        `gorm:"column:completed_assessments" json:"completedAssessments"`
	AvgScore             float64    `gorm:"column:avg_score" json:"avgScore"`
	LastAssessmentDate   *time.Time `gorm:"column:last_assessment_date" json:"lastAssessmentDate,omitempty"`
}

type SubjectPerformance struct {
	SubjectID          string  `gorm:"column:subject_id" json:"subjectId"`
	SubjectName        string  `gorm:"column:subject_name" json:"subjectName"`
	SubjectDescription string  `gorm:"column:subject_description" json:"subjectDescription,omitempty"`
	SubjectWeight      float64 `gorm:"column:subject_weight" json:"subjectWeight"`
	TotalAnswers       int     `gorm:"column:total_answers" json:"totalAnswers"`
	AvgScore           float64 `gorm:"column:avg_score" json:"avgScore"`
	CorrectAnswers     int     `gorm:"column:correct_answers" json:"correctAnswers"`
	SuccessRatePct     float64 `gorm:"column:success_rate_percentage" json:"successRatePercentage"`
}

type AssessmentDetailedReport struct {
	AssessmentID      string     `gorm:"column:assessment_id" json:"assessmentId"`
	CandidateName     string     `gorm:"column:candidate_name" json:"candidateName"`
	CandidateEmail    string     `gorm:"column:candidate_email" json:"candidateEmail"`
	Status            string     `gorm:"column:status" json:"status"`
	StartedAt         time.Time  `gorm:"column:started_at" json:"startedAt"`
	CompletedAt       *time.Time `gorm:"column:completed_at" json:"completedAt,omitempty"`
	TotalScore        float64    `gorm:"column:total_score" json:"totalScore"`
	PercentageScore   float64    `gorm:"column:percentage_score" json:"percentageScore"`
	TimeSpentMinutes  int        `gorm:"column:time_spent_minutes" json:"timeSpentMinutes"`
	QuestionsAnswered int        `gorm:"column:total_questions_answered" json:"totalQuestionsAnswered"`
	CorrectAnswers    int        `gorm:"column:correct_answers" json:"correctAnswers"`
	AccuracyPct       float64    `gorm:"column:accuracy_percentage" json:"accuracyPercentage"`
}

type SystemStats struct {
	TotalCandidates      int64 `json:"totalCandidates"`
	TotalAssessments     int64 `json:"totalAssessments"`
	CompletedAssessments int64 `json:"completedAssessments"`
	CompletionRate       int   `json:"completionRate"`
	TotalQuestions       int64 `json:"totalQuestions"`
}
