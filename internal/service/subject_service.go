package service

import (
	"context"
	"encoding/json"
	"time"

	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/questionnaire"
	"quest_nos_backend/internal/repository"
	"quest_nos_backend/pkg/logger"
	"quest_nos_backend/pkg/retry"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	subjectsCacheKey = "subjects:active"
	subjectsCacheTTL = 5 * time.Minute
)

// SubjectService serves the active scoring categories and the resolved
// section→subject mapping used by the flattener.
type SubjectService struct {
	Repo  *repository.SubjectRepository
	Redis *redis.Client
}

func NewSubjectService(repo *repository.SubjectRepository, rdb *redis.Client) *SubjectService {
	return &SubjectService{Repo: repo, Redis: rdb}
}

// ListActive returns the active subjects, from cache when possible. The store
// read goes through the retry wrapper: subject lookups happen on every
// submission and transient connectivity must not fail them.
func (s *SubjectService) ListActive(ctx context.Context) ([]model.Subject, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, subjectsCacheKey).Bytes(); err == nil {
			var subjects []model.Subject
			if err := json.Unmarshal(cached, &subjects); err == nil {
				return subjects, nil
			}
		}
	}

	subjects, err := retry.Do(s.Repo.ListActive, retry.Default)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(subjects); err == nil {
			if err := s.Redis.Set(ctx, subjectsCacheKey, payload, subjectsCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache active subjects", zap.Error(err))
			}
		}
	}
	return subjects, nil
}

// SectionSubjectIDs resolves the closed section enumeration against the
// active subject set. Errors here mean a subject was renamed or deactivated.
func (s *SubjectService) SectionSubjectIDs(ctx context.Context) (map[questionnaire.SectionID]string, error) {
	subjects, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return questionnaire.SubjectIDsBySection(subjects)
}

// ValidateMapping is run once at startup so an unmapped or renamed section
// fails fast instead of silently dropping answers later.
func (s *SubjectService) ValidateMapping(ctx context.Context) error {
	_, err := s.SectionSubjectIDs(ctx)
	return err
}
