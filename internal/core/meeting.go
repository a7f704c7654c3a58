package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"fpadmin/internal/kv"
	"fpadmin/pkg/domain"
)

// MeetingConfigKey is the kv key holding the video meeting configuration.
const MeetingConfigKey = "meetingConfig"

// googleMeetPlaceholder is returned until a real Google Meet integration exists.
const googleMeetPlaceholder = "https://meet.google.com/mock-meeting"

// MeetingService owns the video meeting configuration and builds meeting URLs.
type MeetingService struct {
	store   kv.Store
	logger  *zap.Logger
	metrics MetricsRecorder
	now     func() time.Time

	// writeMu serializes updates so persisted order matches in-memory order.
	writeMu sync.Mutex
	mu      sync.RWMutex
	cfg     MeetingConfig
}

// NewMeetingService returns a service holding the default configuration.
// Call Load to pick up a previously persisted one.
func NewMeetingService(store kv.Store, opts ...Option) *MeetingService {
	o := buildOptions(opts)
	return &MeetingService{
		store:   store,
		logger:  o.logger.Named("meeting"),
		metrics: o.metrics,
		now:     o.now,
		cfg:     domain.DefaultMeetingConfig(),
	}
}

// Load reads the persisted configuration. A missing key keeps the default.
func (s *MeetingService) Load(ctx context.Context) error {
	raw, err := s.store.Get(ctx, MeetingConfigKey)
	if errors.Is(err, kv.ErrNotFound) {
		s.logger.Debug("no stored meeting config, using default")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load meeting config: %w", err)
	}
	var cfg MeetingConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("decode meeting config: %w", err)
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.logger.Info("meeting config loaded",
		zap.String("provider", string(cfg.Provider)),
		zap.Bool("enabled", cfg.Enabled))
	return nil
}

// Config returns the current configuration.
func (s *MeetingService) Config() MeetingConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// UpdateConfig replaces the configuration wholesale and persists it. When
// persisting fails the new value stays in effect and the error is returned.
func (s *MeetingService) UpdateConfig(ctx context.Context, cfg MeetingConfig) error {
	if err := ValidateStruct(cfg); err != nil {
		return err
	}
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode meeting config: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	start := time.Now()
	err = s.store.Put(ctx, MeetingConfigKey, payload)
	s.metrics.ObserveOperation("update_meeting_config", time.Since(start), err)
	if err != nil {
		s.logger.Error("persist meeting config", zap.Error(err))
		return fmt.Errorf("persist meeting config: %w", err)
	}
	s.logger.Info("meeting config updated",
		zap.String("provider", string(cfg.Provider)),
		zap.Bool("enabled", cfg.Enabled))
	return nil
}

// GenerateMeetingURL builds a join URL for the configured provider.
func (s *MeetingService) GenerateMeetingURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cfg := s.Config()
	if !cfg.Enabled {
		return "", domain.NotEnabledError{}
	}
	var url string
	switch cfg.Provider {
	case domain.ProviderJitsiMeet:
		room := cfg.Settings.RoomPrefix + strconv.FormatInt(s.now().UnixMilli(), 10)
		url = "https://" + cfg.Settings.Domain + "/" + room
	case domain.ProviderGoogleMeet:
		url = googleMeetPlaceholder
	default:
		return "", domain.InvalidProviderError{Provider: cfg.Provider}
	}
	s.metrics.ObserveMeetingURL(string(cfg.Provider))
	s.logger.Debug("meeting url generated", zap.String("provider", string(cfg.Provider)), zap.String("url", url))
	return url, nil
}
