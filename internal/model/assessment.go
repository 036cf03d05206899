package model

import "time"

type AssessmentStatus string

const (
	AssessmentInProgress AssessmentStatus = "in_progress"
	AssessmentCompleted  AssessmentStatus = "completed"
	AssessmentAbandoned  AssessmentStatus = "abandoned"
)

// Assessment is one questionnaire attempt by one candidate. Scores stay null
// until the scoring routine has run; retakes are separate rows ordered by
// creation time.
//
// swagger:model Assessment
type Assessment struct {
	UUIDBase
	CandidateID     string           `gorm:"index;type:varchar(36);not null" json:"candidateId"`
	Candidate       *Candidate       `gorm:"foreignKey:CandidateID" json:"candidate,omitempty"`
	Status          AssessmentStatus `gorm:"type:enum('in_progress','completed','abandoned');default:'in_progress'" json:"status"`
	StartedAt       time.Time        `gorm:"default:CURRENT_TIMESTAMP(3)" json:"startedAt"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
	TotalScore      *float64         `json:"totalScore,omitempty"`
	PercentageScore *float64         `json:"percentageScore,omitempty"`
	TimeSpentMin    int              `gorm:"column:time_spent_minutes;default:0" json:"timeSpentMinutes"`
	IPAddress       string           `gorm:"size:45" json:"ipAddress,omitempty"`
	UserAgent       string           `gorm:"size:500" json:"userAgent,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// AssessmentAnswer is one scored response, written in bulk at submission time
// and immutable afterwards. QuestionNumber is unique per assessment, assigned
// by the flattener as a contiguous 1-based sequence.
//
// swagger:model AssessmentAnswer
type AssessmentAnswer struct {
	UUIDBase
	AssessmentID     string   `gorm:"index;type:varchar(36);not null;uniqueIndex:idx_assessment_question,priority:1" json:"assessmentId"`
	SubjectID        string   `gorm:"index;type:varchar(36);not null" json:"subjectId"`
	Subject          *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	QuestionNumber   int      `gorm:"not null;uniqueIndex:idx_assessment_question,priority:2" json:"questionNumber"`
	QuestionText     string   `gorm:"size:500" json:"questionText"`
	AnswerValue      string   `gorm:"size:500;not null" json:"answerValue"`
	AnswerScore      float64  `gorm:"default:0" json:"answerScore"`
	IsCorrect        bool     `gorm:"default:false" json:"isCorrect"`
	TimeSpentSeconds int      `gorm:"default:0" json:"timeSpentSeconds"`
}

func (AssessmentAnswer) TableName() string {
	return "assessment_answers"
}
