package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"quest_nos_backend/internal/config"
	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/repository"
	"quest_nos_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	brandingCacheKey = "branding:active"
	brandingCacheTTL = 10 * time.Minute
)

// BrandingService serves the white-label configuration. The active row is
// loaded once per cache window; when none exists the config-provided defaults
// apply. The parsed feature set is immutable for the lifetime of the row.
type BrandingService struct {
	Repo    *repository.BrandingRepository
	Storage *StorageService
	Redis   *redis.Client

	mu          sync.RWMutex
	defaultsCfg config.BrandingConfig
}

func NewBrandingService(repo *repository.BrandingRepository, storage *StorageService, rdb *redis.Client, cfg *config.Config) *BrandingService {
	return &BrandingService{Repo: repo, Storage: storage, Redis: rdb, defaultsCfg: cfg.Branding}
}

// ReloadDefaults swaps the fallback branding, picked up from a config file
// reload while the server runs.
func (s *BrandingService) ReloadDefaults(b config.BrandingConfig) {
	s.mu.Lock()
	s.defaultsCfg = b
	s.mu.Unlock()
}

// Current returns the active branding, from cache, store or config defaults,
// in that order.
func (s *BrandingService) Current(ctx context.Context) (*model.ClientBranding, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, brandingCacheKey).Bytes(); err == nil {
			var branding model.ClientBranding
			if err := json.Unmarshal(cached, &branding); err == nil {
				return &branding, nil
			}
		}
	}

	branding, err := s.Repo.Active()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar branding: %w", err)
	}

	s.cache(ctx, branding)
	return branding, nil
}

// Features evaluates the capability set once for routing decisions.
func (s *BrandingService) Features(ctx context.Context) (model.FeatureSet, error) {
	branding, err := s.Current(ctx)
	if err != nil {
		return 0, err
	}
	return branding.Features(), nil
}

// Save activates a new configuration and drops the cache.
func (s *BrandingService) Save(ctx context.Context, branding *model.ClientBranding) error {
	if branding.CompanyName == "" {
		s.mu.RLock()
		branding.CompanyName = s.defaultsCfg.CompanyName
		s.mu.RUnlock()
	}
	if err := s.Repo.Save(branding); err != nil {
		return fmt.Errorf("erro ao salvar branding: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// UploadAsset stores a logo or favicon and returns its public URL.
func (s *BrandingService) UploadAsset(ctx context.Context, kind, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if kind != "logo" && kind != "favicon" {
		return "", fmt.Errorf("unsupported asset kind %q", kind)
	}
	objectName := fmt.Sprintf("branding/%s/%d_%s", kind, time.Now().UnixNano(), filename)
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", fmt.Errorf("erro ao enviar arquivo de branding: %w", err)
	}
	return url, nil
}

func (s *BrandingService) defaults() *model.ClientBranding {
	s.mu.RLock()
	b := s.defaultsCfg
	s.mu.RUnlock()
	return &model.ClientBranding{
		CompanyName:     b.CompanyName,
		Tagline:         b.Tagline,
		PrimaryColor:    b.PrimaryColor,
		SecondaryColor:  b.SecondaryColor,
		AccentColor:     b.AccentColor,
		HeroTitle:       b.HeroTitle,
		HeroSubtitle:    b.HeroSubtitle,
		EnabledFeatures: strings.Join(b.EnabledFeatures, ","),
		IsActive:        true,
	}
}

func (s *BrandingService) cache(ctx context.Context, branding *model.ClientBranding) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(branding)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, brandingCacheKey, payload, brandingCacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache branding", zap.Error(err))
	}
}

func (s *BrandingService) invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, brandingCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate branding cache", zap.Error(err))
	}
}
