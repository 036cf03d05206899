package service

import (
	"context"
	"fmt"
	"time"

	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/questionnaire"
	"quest_nos_backend/internal/repository"
	"quest_nos_backend/internal/util"
	"quest_nos_backend/pkg/logger"
	"quest_nos_backend/pkg/monitoring"
	"quest_nos_backend/pkg/retry"

	"go.uber.org/zap"
)

// assessmentTx is the transactional slice of the assessment repository used
// while finalizing one submission.
type assessmentTx interface {
	InsertAnswers(answers []model.AssessmentAnswer) error
	ComputeScore(assessmentID string) (repository.ScoreResult, error)
	Complete(a *model.Assessment, score repository.ScoreResult, timeSpentMinutes int) error
}

// assessmentStore is the slice of AssessmentRepository the service depends
// on. WithTx wraps the non-transactional calls in one database transaction.
type assessmentStore interface {
	Create(a *model.Assessment) error
	FindByID(id string) (*model.Assessment, error)
	ListByCandidate(candidateID string) ([]model.Assessment, error)
	AnswersByAssessment(assessmentID string) ([]model.AssessmentAnswer, error)
	MarkStaleAbandoned(cutoff time.Time) (int64, error)
	WithTx(fn func(tx assessmentTx) error) error
}

type candidateDirectory interface {
	Upsert(req CandidateFormRequest) (*model.Candidate, error)
	GetByID(id string) (*model.Candidate, error)
}

type subjectResolver interface {
	SectionSubjectIDs(ctx context.Context) (map[questionnaire.SectionID]string, error)
}

type ipResolver interface {
	ClientIP(ctx context.Context) string
}

// gormAssessmentStore adapts AssessmentRepository to assessmentStore; the
// repository's WithTx passes the concrete transactional repository, which
// already satisfies assessmentTx.
type gormAssessmentStore struct {
	*repository.AssessmentRepository
}

func (g gormAssessmentStore) WithTx(fn func(tx assessmentTx) error) error {
	return g.AssessmentRepository.WithTx(func(txRepo *repository.AssessmentRepository) error {
		return fn(txRepo)
	})
}

// AssessmentService orchestrates one full submission: candidate upsert,
// answer flattening, assessment creation, answer persistence, scoring and the
// in_progress→completed transition.
type AssessmentService struct {
	Repo       assessmentStore
	Candidates candidateDirectory
	Subjects   subjectResolver
	IPLookup   ipResolver
}

func NewAssessmentService(repo *repository.AssessmentRepository, candidates *CandidateService, subjects *SubjectService, ipLookup *IPLookupService) *AssessmentService {
	return &AssessmentService{
		Repo:       gormAssessmentStore{repo},
		Candidates: candidates,
		Subjects:   subjects,
		IPLookup:   ipLookup,
	}
}

// SubmissionRequest carries one questionnaire submission. Either CandidateID
// references an existing candidate or Candidate holds the profile form to
// upsert first.
type SubmissionRequest struct {
	CandidateID      string                 `json:"candidateId"`
	Candidate        *CandidateFormRequest  `json:"candidate"`
	Responses        map[string]interface{} `json:"responses" binding:"required"`
	TimeSpentMinutes int                    `json:"timeSpentMinutes"`

	// Filled by the controller, not the client payload.
	ClientIP  string `json:"-"`
	UserAgent string `json:"-"`
}

// Submit runs the whole pipeline. Answer persistence and the completion
// update share one transaction; the scoring routine is best-effort and a
// failure there completes the assessment with zero scores instead of leaving
// it in_progress.
func (s *AssessmentService) Submit(ctx context.Context, req SubmissionRequest) (*model.Assessment, error) {
	candidateID := req.CandidateID
	if req.Candidate != nil {
		candidate, err := s.Candidates.Upsert(*req.Candidate)
		if err != nil {
			return nil, err
		}
		candidateID = candidate.ID
	}
	if candidateID == "" {
		return nil, fmt.Errorf("%w: candidato não informado", util.ErrInvalidSubmission)
	}
	if req.Candidate == nil {
		if _, err := s.Candidates.GetByID(candidateID); err != nil {
			return nil, err
		}
	}

	subjectIDs, err := s.Subjects.SectionSubjectIDs(ctx)
	if err != nil {
		return nil, err
	}

	flat, err := questionnaire.Flatten(req.Responses, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidSubmission, err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("%w: nenhuma resposta informada", util.ErrInvalidSubmission)
	}

	clientIP := req.ClientIP
	if clientIP == "" {
		clientIP = s.IPLookup.ClientIP(ctx)
	}

	assessment := &model.Assessment{
		CandidateID: candidateID,
		Status:      model.AssessmentInProgress,
		StartedAt:   time.Now(),
		IPAddress:   clientIP,
		UserAgent:   req.UserAgent,
	}
	if err := s.Repo.Create(assessment); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("create_failed").Inc()
		return nil, fmt.Errorf("erro ao iniciar avaliação: %w", err)
	}

	answers := make([]model.AssessmentAnswer, len(flat))
	for i, a := range flat {
		answers[i] = model.AssessmentAnswer{
			AssessmentID:     assessment.ID,
			SubjectID:        a.SubjectID,
			QuestionNumber:   a.QuestionNumber,
			QuestionText:     a.QuestionText,
			AnswerValue:      a.AnswerValue,
			AnswerScore:      a.AnswerScore,
			IsCorrect:        a.IsCorrect,
			TimeSpentSeconds: a.TimeSpentSeconds,
		}
	}

	err = s.Repo.WithTx(func(tx assessmentTx) error {
		return s.finalize(tx, assessment, answers, req.TimeSpentMinutes)
	})
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("persist_failed").Inc()
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("completed").Inc()
	return assessment, nil
}

// finalize persists the answers, asks the scoring routine for the totals and
// completes the assessment. A scoring failure degrades to zero scores; an
// answer-persistence failure aborts and rolls the transaction back.
func (s *AssessmentService) finalize(tx assessmentTx, assessment *model.Assessment, answers []model.AssessmentAnswer, timeSpentMinutes int) error {
	if err := tx.InsertAnswers(answers); err != nil {
		return fmt.Errorf("erro ao salvar respostas: %w", err)
	}

	score, err := tx.ComputeScore(assessment.ID)
	if err != nil {
		logger.Log.Warn("scoring routine failed, completing with zero scores",
			zap.String("assessmentId", assessment.ID),
			zap.Error(err))
		monitoring.ScoringFallbacks.Inc()
		score = repository.ScoreResult{}
	}

	if err := tx.Complete(assessment, score, timeSpentMinutes); err != nil {
		return fmt.Errorf("erro ao finalizar avaliação: %w", err)
	}
	return nil
}

func (s *AssessmentService) CandidateAssessments(candidateID string) ([]model.Assessment, error) {
	assessments, err := s.Repo.ListByCandidate(candidateID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar avaliações: %w", err)
	}
	return assessments, nil
}

// AnswerDetail is one row of the admin answers modal: a questionnaire answer
// or a synthesized entry for the candidate's personal-presentation data.
type AnswerDetail struct {
	model.AssessmentAnswer
	SubjectName    string `json:"subjectName"`
	IsPersonalData bool   `json:"isPersonalData"`
}

// AssessmentAnswers returns the stored answers in question order, followed by
// the candidate's personal fields and professional URLs as synthetic entries
// numbered after the last real question.
func (s *AssessmentService) AssessmentAnswers(assessmentID string) ([]AnswerDetail, error) {
	assessment, err := s.Repo.FindByID(assessmentID)
	if err != nil {
		return nil, util.ErrAssessmentNotFound
	}

	answers, err := retry.Do(func() ([]model.AssessmentAnswer, error) {
		return s.Repo.AnswersByAssessment(assessmentID)
	}, retry.Default)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar respostas: %w", err)
	}

	details := make([]AnswerDetail, 0, len(answers)+10)
	for _, a := range answers {
		details = append(details, AnswerDetail{
			AssessmentAnswer: a,
			SubjectName:      "Competências Técnicas",
		})
	}

	candidate, err := s.Candidates.GetByID(assessment.CandidateID)
	if err != nil {
		logger.Log.Warn("could not load personal data for answers view",
			zap.String("assessmentId", assessmentID),
			zap.Error(err))
		return details, nil
	}

	number := len(answers) + 1
	appendPersonal := func(subjectName, questionText, value string) {
		if value == "" {
			return
		}
		detail := AnswerDetail{
			SubjectName:    subjectName,
			IsPersonalData: true,
		}
		detail.AssessmentID = assessmentID
		detail.QuestionNumber = number
		detail.QuestionText = questionText
		detail.AnswerValue = value
		detail.AnswerScore = 5
		detail.IsCorrect = true
		details = append(details, detail)
		number++
	}

	appendPersonal("Dados Pessoais", "Apresentação Pessoal", candidate.PersonalPresentation)
	appendPersonal("Dados Pessoais", "Habilidades Adicionais", candidate.AdditionalSkills)
	appendPersonal("Dados Pessoais", "Soft Skills em Destaque", candidate.HighlightedSoftSkills)
	appendPersonal("Dados Pessoais", "Experiências Relevantes", candidate.RelevantExperiences)
	appendPersonal("Dados Pessoais", "Objetivos Profissionais", candidate.ProfessionalGoals)
	appendPersonal("Links Profissionais", "URL LinkedIn", candidate.LinkedinURL)
	appendPersonal("Links Profissionais", "URL Portfólio", candidate.PortfolioURL)
	appendPersonal("Links Profissionais", "URL GitHub", candidate.GithubURL)
	appendPersonal("Links Profissionais", "URL Behance/Dribbble", candidate.BehanceURL)
	appendPersonal("Links Profissionais", "URL Instagram", candidate.InstagramURL)

	return details, nil
}

// ReapStale sweeps in_progress assessments older than staleAfter into
// abandoned. Run periodically from the app's background ticker.
func (s *AssessmentService) ReapStale(staleAfter time.Duration) error {
	cutoff := time.Now().Add(-staleAfter)
	swept, err := s.Repo.MarkStaleAbandoned(cutoff)
	if err != nil {
		return err
	}
	if swept > 0 {
		logger.Log.Info("abandoned stale assessments", zap.Int64("count", swept))
	}
	return nil
}
