package service

import (
	"errors"
	"os"
	"testing"

	"quest_nos_backend/internal/model"
	"quest_nos_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fakeCandidateStore keeps candidates in memory keyed by email.
type fakeCandidateStore struct {
	byEmail map[string]*model.Candidate
	byID    map[string]*model.Candidate
	creates int
	updates int
	deletes []string

	findErr error
}

func newFakeCandidateStore() *fakeCandidateStore {
	return &fakeCandidateStore{
		byEmail: make(map[string]*model.Candidate),
		byID:    make(map[string]*model.Candidate),
	}
}

func (f *fakeCandidateStore) FindByEmail(email string) (*model.Candidate, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if c, ok := f.byEmail[email]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCandidateStore) FindByID(id string) (*model.Candidate, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCandidateStore) Create(c *model.Candidate) error {
	f.creates++
	c.ID = model.GenerateUUID()
	f.byEmail[c.Email] = c
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCandidateStore) Update(c *model.Candidate) error {
	f.updates++
	f.byEmail[c.Email] = c
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCandidateStore) DeleteCascade(id string) error {
	f.deletes = append(f.deletes, id)
	return nil
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	store := newFakeCandidateStore()
	svc := &CandidateService{Store: store}

	req := CandidateFormRequest{
		FullName:              "Ana Souza",
		Email:                 "ana@example.com",
		TermsAccepted:         true,
		PrivacyPolicyAccepted: true,
	}

	first, err := svc.Upsert(req)
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if store.creates != 1 || store.updates != 0 {
		t.Fatalf("creates/updates = %d/%d, want 1/0", store.creates, store.updates)
	}
	if first.TermsAcceptedAt == nil || first.PrivacyPolicyAcceptedAt == nil {
		t.Error("accepted consents must be timestamped")
	}
	if first.PreferredLanguage != "pt-BR" {
		t.Errorf("default preferred language = %q, want pt-BR", first.PreferredLanguage)
	}

	req.FullName = "Ana Clara Souza"
	req.Phone = "+55 11 99999-0000"
	second, err := svc.Upsert(req)
	if err != nil {
		t.Fatalf("second Upsert returned error: %v", err)
	}
	if store.creates != 1 || store.updates != 1 {
		t.Fatalf("creates/updates = %d/%d, want 1/1", store.creates, store.updates)
	}
	if second.ID != first.ID {
		t.Errorf("repeat submission must keep the same candidate, got %q != %q", second.ID, first.ID)
	}
	if second.FullName != "Ana Clara Souza" || second.Phone != "+55 11 99999-0000" {
		t.Errorf("update did not apply form fields: %+v", second)
	}
}

func TestUpsertWithoutConsentLeavesTimestampsNil(t *testing.T) {
	store := newFakeCandidateStore()
	svc := &CandidateService{Store: store}

	c, err := svc.Upsert(CandidateFormRequest{FullName: "Bruno Lima", Email: "bruno@example.com"})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if c.TermsAcceptedAt != nil || c.PrivacyPolicyAcceptedAt != nil {
		t.Error("consent timestamps must stay nil when consents are false")
	}
}

func TestUpsertPropagatesLookupErrors(t *testing.T) {
	store := newFakeCandidateStore()
	store.findErr = errors.New("connection refused")
	svc := &CandidateService{Store: store}

	if _, err := svc.Upsert(CandidateFormRequest{FullName: "X", Email: "x@example.com"}); err == nil {
		t.Fatal("expected lookup error to propagate")
	}
	if store.creates != 0 {
		t.Error("no candidate may be created when the lookup fails")
	}
}

func TestSavePresentation(t *testing.T) {
	store := newFakeCandidateStore()
	svc := &CandidateService{Store: store}

	c, err := svc.Upsert(CandidateFormRequest{FullName: "Carla Dias", Email: "carla@example.com"})
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}

	updated, err := svc.SavePresentation(c.ID, PersonalPresentationRequest{
		PersonalPresentation: "Sou designer com foco em branding.",
		LinkedinURL:          "https://linkedin.com/in/carla",
	})
	if err != nil {
		t.Fatalf("SavePresentation returned error: %v", err)
	}
	if updated.PersonalPresentation == "" || updated.LinkedinURL == "" {
		t.Error("presentation fields not applied")
	}
	if updated.PresentationDoneAt == nil {
		t.Error("presentation completion must be timestamped")
	}
}

func TestDeleteCascades(t *testing.T) {
	store := newFakeCandidateStore()
	svc := &CandidateService{Store: store}

	if err := svc.Delete("abc"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(store.deletes) != 1 || store.deletes[0] != "abc" {
		t.Errorf("deletes = %v, want [abc]", store.deletes)
	}
}
