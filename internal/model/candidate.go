package model

import "time"

// swagger:model Candidate
type Candidate struct {
	UUIDBase
	Email              string `gorm:"size:255;unique;not null" json:"email"`
	FullName           string `gorm:"size:255;not null" json:"fullName"`
	Phone              string `gorm:"size:50" json:"phone,omitempty"`
	BirthDate          string `gorm:"size:10" json:"birthDate,omitempty"`
	Gender             string `gorm:"size:50" json:"gender,omitempty"`
	EducationLevel     string `gorm:"size:100" json:"educationLevel,omitempty"`
	ExperienceYears    int    `gorm:"default:0" json:"experienceYears"`
	AccessibilityNeeds string `gorm:"type:text" json:"accessibilityNeeds,omitempty"`
	PreferredLanguage  string `gorm:"size:10;default:'pt-BR'" json:"preferredLanguage"`

	ConsentDataProcessing   bool       `gorm:"default:false" json:"consentDataProcessing"`
	ConsentMarketing        bool       `gorm:"default:false" json:"consentMarketing"`
	TermsAccepted           bool       `gorm:"default:false" json:"termsAccepted"`
	TermsAcceptedAt         *time.Time `json:"termsAcceptedAt,omitempty"`
	PrivacyPolicyAccepted   bool       `gorm:"default:false" json:"privacyPolicyAccepted"`
	PrivacyPolicyAcceptedAt *time.Time `json:"privacyPolicyAcceptedAt,omitempty"`
	TermsAcceptanceIP       string     `gorm:"size:45" json:"termsAcceptanceIp,omitempty"`

	// Free-text presentation, filled by an optional second submission step.
	PersonalPresentation  string     `gorm:"type:text" json:"personalPresentation,omitempty"`
	AdditionalSkills      string     `gorm:"type:text" json:"additionalSkills,omitempty"`
	HighlightedSoftSkills string     `gorm:"type:text" json:"highlightedSoftSkills,omitempty"`
	RelevantExperiences   string     `gorm:"type:text" json:"relevantExperiences,omitempty"`
	ProfessionalGoals     string     `gorm:"type:text" json:"professionalGoals,omitempty"`
	LinkedinURL           string     `gorm:"size:500" json:"linkedinUrl,omitempty"`
	PortfolioURL          string     `gorm:"size:500" json:"portfolioUrl,omitempty"`
	GithubURL             string     `gorm:"size:500" json:"githubUrl,omitempty"`
	BehanceURL            string     `gorm:"size:500" json:"behanceUrl,omitempty"`
	InstagramURL          string     `gorm:"size:500" json:"instagramUrl,omitempty"`
	PresentationDoneAt    *time.Time `gorm:"column:presentation_completed_at" json:"presentationCompletedAt,omitempty"`
}

func (Candidate) TableName() string {
	return "candidates"
}
