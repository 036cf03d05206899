package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"quest_nos_backend/internal/config"
	"quest_nos_backend/pkg/logger"

	"go.uber.org/zap"
)

// UnknownIP is the sentinel stored when the echo endpoint cannot be reached.
const UnknownIP = "unknown"

// IPLookupService asks a public IP-echo endpoint for the caller's address.
// Strictly best-effort: any failure yields UnknownIP and never blocks a
// submission.
type IPLookupService struct {
	Endpoint string
	Client   *http.Client
}

func NewIPLookupService(cfg *config.IPLookupConfig) *IPLookupService {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &IPLookupService{
		Endpoint: cfg.Endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (s *IPLookupService) ClientIP(ctx context.Context) string {
	if s.Endpoint == "" {
		return UnknownIP
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint, nil)
	if err != nil {
		return UnknownIP
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		logger.Log.Warn("IP lookup failed", zap.Error(err))
		return UnknownIP
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UnknownIP
	}

	var payload struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.IP == "" {
		return UnknownIP
	}
	return payload.IP
}
