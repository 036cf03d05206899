package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/questionnaire"
	"quest_nos_backend/internal/repository"

	"gorm.io/gorm"
)

type fakeAssessmentTx struct {
	insertErr error
	scoreErr  error
	score     repository.ScoreResult

	inserted  []model.AssessmentAnswer
	completed *model.Assessment
	withScore repository.ScoreResult
}

func (f *fakeAssessmentTx) InsertAnswers(answers []model.AssessmentAnswer) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = answers
	return nil
}

func (f *fakeAssessmentTx) ComputeScore(assessmentID string) (repository.ScoreResult, error) {
	if f.scoreErr != nil {
		return repository.ScoreResult{}, f.scoreErr
	}
	return f.score, nil
}

func (f *fakeAssessmentTx) Complete(a *model.Assessment, score repository.ScoreResult, timeSpentMinutes int) error {
	now := time.Now()
	a.Status = model.AssessmentCompleted
	a.CompletedAt = &now
	a.TotalScore = &score.TotalScore
	a.PercentageScore = &score.PercentageScore
	a.TimeSpentMin = timeSpentMinutes
	f.completed = a
	f.withScore = score
	return nil
}

// fakeAssessmentStore backs Submit with the in-memory transaction above.
type fakeAssessmentStore struct {
	tx      *fakeAssessmentTx
	created *model.Assessment
}

func (f *fakeAssessmentStore) Create(a *model.Assessment) error {
	a.ID = model.GenerateUUID()
	f.created = a
	return nil
}

func (f *fakeAssessmentStore) FindByID(id string) (*model.Assessment, error) {
	if f.created != nil && f.created.ID == id {
		return f.created, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAssessmentStore) ListByCandidate(candidateID string) ([]model.Assessment, error) {
	return nil, nil
}

func (f *fakeAssessmentStore) AnswersByAssessment(assessmentID string) ([]model.AssessmentAnswer, error) {
	return f.tx.inserted, nil
}

func (f *fakeAssessmentStore) MarkStaleAbandoned(cutoff time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeAssessmentStore) WithTx(fn func(tx assessmentTx) error) error {
	return fn(f.tx)
}

type fakeSubjects map[questionnaire.SectionID]string

func (f fakeSubjects) SectionSubjectIDs(ctx context.Context) (map[questionnaire.SectionID]string, error) {
	return f, nil
}

type fixedIP string

func (f fixedIP) ClientIP(ctx context.Context) string { return string(f) }

func sampleAnswers(assessmentID string, n int) []model.AssessmentAnswer {
	answers := make([]model.AssessmentAnswer, n)
	for i := range answers {
		answers[i] = model.AssessmentAnswer{
			AssessmentID:   assessmentID,
			QuestionNumber: i + 1,
			AnswerScore:    4,
		}
	}
	return answers
}

func TestFinalizePersistsAndCompletes(t *testing.T) {
	svc := &AssessmentService{}
	tx := &fakeAssessmentTx{score: repository.ScoreResult{TotalScore: 42.5, PercentageScore: 85}}
	assessment := &model.Assessment{Status: model.AssessmentInProgress}
	assessment.ID = "a-1"

	if err := svc.finalize(tx, assessment, sampleAnswers("a-1", 3), 12); err != nil {
		t.Fatalf("finalize returned error: %v", err)
	}
	if len(tx.inserted) != 3 {
		t.Errorf("inserted %d answers, want 3", len(tx.inserted))
	}
	if tx.completed == nil {
		t.Fatal("assessment was not completed")
	}
	if tx.withScore.TotalScore != 42.5 || tx.withScore.PercentageScore != 85 {
		t.Errorf("completed with score %+v", tx.withScore)
	}
}

func TestFinalizeScoringFailureCompletesWithZeroScores(t *testing.T) {
	svc := &AssessmentService{}
	tx := &fakeAssessmentTx{scoreErr: errors.New("PROCEDURE calculate_assessment_score does not exist")}
	assessment := &model.Assessment{Status: model.AssessmentInProgress}
	assessment.ID = "a-2"

	if err := svc.finalize(tx, assessment, sampleAnswers("a-2", 2), 5); err != nil {
		t.Fatalf("finalize must not fail on scoring errors, got: %v", err)
	}
	if tx.completed == nil {
		t.Fatal("assessment must still be completed when scoring fails")
	}
	if tx.withScore != (repository.ScoreResult{}) {
		t.Errorf("expected zero scores, got %+v", tx.withScore)
	}
}

func TestFinalizeAnswerPersistenceFailureAborts(t *testing.T) {
	svc := &AssessmentService{}
	insertErr := errors.New("duplicate entry for idx_assessment_question")
	tx := &fakeAssessmentTx{insertErr: insertErr}
	assessment := &model.Assessment{Status: model.AssessmentInProgress}
	assessment.ID = "a-3"

	err := svc.finalize(tx, assessment, sampleAnswers("a-3", 2), 5)
	if !errors.Is(err, insertErr) {
		t.Fatalf("finalize error = %v, want %v", err, insertErr)
	}
	if tx.completed != nil {
		t.Error("assessment must not be completed when answers fail to persist")
	}
}

func TestSubmitPersistsCandidateAnswersAndCompletion(t *testing.T) {
	store := &fakeAssessmentStore{tx: &fakeAssessmentTx{
		score: repository.ScoreResult{TotalScore: 9, PercentageScore: 90},
	}}
	candidateStore := newFakeCandidateStore()
	svc := &AssessmentService{
		Repo:       store,
		Candidates: &CandidateService{Store: candidateStore},
		Subjects:   fakeSubjects{questionnaire.SectionSoftSkills: "subj-soft"},
		IPLookup:   fixedIP("203.0.113.7"),
	}

	req := SubmissionRequest{
		Candidate: &CandidateFormRequest{
			FullName:              "Maria Silva",
			Email:                 "maria@example.com",
			TermsAccepted:         true,
			PrivacyPolicyAccepted: true,
		},
		Responses: map[string]interface{}{
			"softSkills": map[string]interface{}{
				"criatividade": 4.0,
				"comunicacao":  5.0,
			},
		},
		TimeSpentMinutes: 18,
		UserAgent:        "go-test",
	}

	assessment, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	candidate, err := candidateStore.FindByEmail("maria@example.com")
	if err != nil {
		t.Fatalf("candidate was not created: %v", err)
	}
	if candidate.FullName != "Maria Silva" {
		t.Errorf("candidate full name = %q", candidate.FullName)
	}
	if assessment.CandidateID != candidate.ID {
		t.Errorf("assessment candidate = %q, want %q", assessment.CandidateID, candidate.ID)
	}

	if assessment.Status != model.AssessmentCompleted {
		t.Errorf("assessment status = %q, want completed", assessment.Status)
	}
	if assessment.CompletedAt == nil {
		t.Error("completedAt was not stamped")
	}
	if assessment.TotalScore == nil || *assessment.TotalScore != 9 {
		t.Errorf("total score = %v, want 9", assessment.TotalScore)
	}
	if assessment.PercentageScore == nil || *assessment.PercentageScore != 90 {
		t.Errorf("percentage score = %v, want 90", assessment.PercentageScore)
	}
	if assessment.TimeSpentMin != 18 {
		t.Errorf("time spent = %d, want 18", assessment.TimeSpentMin)
	}
	if assessment.IPAddress != "203.0.113.7" {
		t.Errorf("ip address = %q", assessment.IPAddress)
	}

	answers := store.tx.inserted
	if len(answers) != 2 {
		t.Fatalf("inserted %d answers, want 2", len(answers))
	}
	for i, want := range []struct {
		number int
		text   string
		value  string
		score  float64
	}{
		{1, "softSkills: comunicacao", "5", 5},
		{2, "softSkills: criatividade", "4", 4},
	} {
		got := answers[i]
		if got.AssessmentID != assessment.ID {
			t.Errorf("answer %d assessment = %q, want %q", i, got.AssessmentID, assessment.ID)
		}
		if got.SubjectID != "subj-soft" {
			t.Errorf("answer %d subject = %q", i, got.SubjectID)
		}
		if got.QuestionNumber != want.number || got.QuestionText != want.text {
			t.Errorf("answer %d = #%d %q, want #%d %q",
				i, got.QuestionNumber, got.QuestionText, want.number, want.text)
		}
		if got.AnswerValue != want.value || got.AnswerScore != want.score {
			t.Errorf("answer %d = value %q score %v, want %q %v",
				i, got.AnswerValue, got.AnswerScore, want.value, want.score)
		}
	}
}

func TestSubmitUnknownCandidateIDFails(t *testing.T) {
	store := &fakeAssessmentStore{tx: &fakeAssessmentTx{}}
	svc := &AssessmentService{
		Repo:       store,
		Candidates: &CandidateService{Store: newFakeCandidateStore()},
		Subjects:   fakeSubjects{questionnaire.SectionSoftSkills: "subj-soft"},
		IPLookup:   fixedIP(""),
	}

	_, err := svc.Submit(context.Background(), SubmissionRequest{
		CandidateID: "nobody",
		Responses: map[string]interface{}{
			"softSkills": map[string]interface{}{"comunicacao": 5.0},
		},
	})
	if err == nil {
		t.Fatal("Submit must fail for an unknown candidate id")
	}
	if store.created != nil {
		t.Error("no assessment may be created for an unknown candidate")
	}
}
