package service

import (
	"errors"
	"fmt"
	"time"

	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/repository"
	"quest_nos_backend/internal/util"
	"quest_nos_backend/pkg/retry"

	"gorm.io/gorm"
)

// candidateStore is the slice of the candidate repository the upsert needs.
type candidateStore interface {
	FindByEmail(email string) (*model.Candidate, error)
	FindByID(id string) (*model.Candidate, error)
	Create(candidate *model.Candidate) error
	Update(candidate *model.Candidate) error
	DeleteCascade(candidateID string) error
}

type CandidateService struct {
	Store   candidateStore
	Reports *repository.ReportRepository
}

func NewCandidateService(store *repository.CandidateRepository, reports *repository.ReportRepository) *CandidateService {
	return &CandidateService{Store: store, Reports: reports}
}

// CandidateFormRequest is the profile-form payload. Full name and email are
// required; everything else is optional.
type CandidateFormRequest struct {
	FullName           string `json:"fullName" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone"`
	BirthDate          string `json:"birthDate"`
	Gender             string `json:"gender"`
	EducationLevel     string `json:"educationLevel"`
	ExperienceYears    int    `json:"experienceYears"`
	AccessibilityNeeds string `json:"accessibilityNeeds"`
	PreferredLanguage  string `json:"preferredLanguage"`

	ConsentDataProcessing bool   `json:"consentDataProcessing"`
	ConsentMarketing      bool   `json:"consentMarketing"`
	TermsAccepted         bool   `json:"termsAccepted"`
	PrivacyPolicyAccepted bool   `json:"privacyPolicyAccepted"`
	TermsAcceptanceIP     string `json:"termsAcceptanceIp"`
}

// PersonalPresentationRequest is the optional second submission step.
type PersonalPresentationRequest struct {
	PersonalPresentation  string `json:"personalPresentation"`
	AdditionalSkills      string `json:"additionalSkills"`
	HighlightedSoftSkills string `json:"highlightedSoftSkills"`
	RelevantExperiences   string `json:"relevantExperiences"`
	ProfessionalGoals     string `json:"professionalGoals"`
	LinkedinURL           string `json:"linkedinUrl"`
	PortfolioURL          string `json:"portfolioUrl"`
	GithubURL             string `json:"githubUrl"`
	BehanceURL            string `json:"behanceUrl"`
	InstagramURL          string `json:"instagramUrl"`
}

// Upsert ensures exactly one candidate exists per email. A repeat submission
// updates the existing record in place, re-stamping consent timestamps for
// consents that are freshly true, so resubmitting from the questionnaire UI
// stays idempotent.
func (s *CandidateService) Upsert(req CandidateFormRequest) (*model.Candidate, error) {
	now := time.Now()

	existing, err := s.Store.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("erro ao buscar candidato: %w", err)
	}

	if err == nil {
		applyForm(existing, req, now)
		if err := s.Store.Update(existing); err != nil {
			return nil, fmt.Errorf("erro ao atualizar candidato: %w", err)
		}
		return existing, nil
	}

	candidate := &model.Candidate{}
	applyForm(candidate, req, now)
	if candidate.PreferredLanguage == "" {
		candidate.PreferredLanguage = "pt-BR"
	}
	if err := s.Store.Create(candidate); err != nil {
		return nil, fmt.Errorf("erro ao criar candidato: %w", err)
	}
	return candidate, nil
}

func applyForm(c *model.Candidate, req CandidateFormRequest, now time.Time) {
	c.FullName = req.FullName
	c.Email = req.Email
	c.Phone = req.Phone
	c.BirthDate = req.BirthDate
	c.Gender = req.Gender
	c.EducationLevel = req.EducationLevel
	c.ExperienceYears = req.ExperienceYears
	c.AccessibilityNeeds = req.AccessibilityNeeds
	if req.PreferredLanguage != "" {
		c.PreferredLanguage = req.PreferredLanguage
	}

	c.ConsentDataProcessing = req.ConsentDataProcessing
	c.ConsentMarketing = req.ConsentMarketing

	c.TermsAccepted = req.TermsAccepted
	if req.TermsAccepted {
		c.TermsAcceptedAt = &now
	} else {
		c.TermsAcceptedAt = nil
	}
	c.PrivacyPolicyAccepted = req.PrivacyPolicyAccepted
	if req.PrivacyPolicyAccepted {
		c.PrivacyPolicyAcceptedAt = &now
	} else {
		c.PrivacyPolicyAcceptedAt = nil
	}
	if req.TermsAcceptanceIP != "" {
		c.TermsAcceptanceIP = req.TermsAcceptanceIP
	}
}

// SavePresentation fills the free-text presentation fields and stamps the
// completion time.
func (s *CandidateService) SavePresentation(candidateID string, req PersonalPresentationRequest) (*model.Candidate, error) {
	candidate, err := s.Store.FindByID(candidateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCandidateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar candidato: %w", err)
	}

	candidate.PersonalPresentation = req.PersonalPresentation
	candidate.AdditionalSkills = req.AdditionalSkills
	candidate.HighlightedSoftSkills = req.HighlightedSoftSkills
	candidate.RelevantExperiences = req.RelevantExperiences
	candidate.ProfessionalGoals = req.ProfessionalGoals
	candidate.LinkedinURL = req.LinkedinURL
	candidate.PortfolioURL = req.PortfolioURL
	candidate.GithubURL = req.GithubURL
	candidate.BehanceURL = req.BehanceURL
	candidate.InstagramURL = req.InstagramURL
	now := time.Now()
	candidate.PresentationDoneAt = &now

	if err := s.Store.Update(candidate); err != nil {
		return nil, fmt.Errorf("erro ao salvar apresentação pessoal: %w", err)
	}
	return candidate, nil
}

func (s *CandidateService) GetByID(id string) (*model.Candidate, error) {
	candidate, err := s.Store.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCandidateNotFound
	}
	return candidate, err
}

// ListSummaries feeds the admin dashboard; retried because the dashboard is
// the first screen hit after deploys, when connections are coldest.
func (s *CandidateService) ListSummaries() ([]model.CandidateSummary, error) {
	return retry.Do(s.Reports.CandidateSummaries, retry.Default)
}

// Delete removes a candidate and cascades to assessments and answers.
func (s *CandidateService) Delete(candidateID string) error {
	if err := s.Store.DeleteCascade(candidateID); err != nil {
		return fmt.Errorf("falha ao deletar candidato: %w", err)
	}
	return nil
}
