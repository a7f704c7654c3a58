package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fpadmin/internal/kv"
	"fpadmin/pkg/domain"
)

// Settings document keys.
const (
	BrandingConfigKey = "brandingConfig"
	EmailConfigKey    = "emailConfig"
)

// DefaultEmailConfig returns the email configuration used before one is stored.
func DefaultEmailConfig() EmailConfig {
	return EmailConfig{
		Provider: domain.EmailSMTP,
		Settings: domain.EmailSettings{Port: 587},
	}
}

// SettingsService reads and writes the branding and email documents.
type SettingsService struct {
	store  kv.Store
	logger *zap.Logger
}

// NewSettingsService wires a settings service to a kv store.
func NewSettingsService(store kv.Store, opts ...Option) *SettingsService {
	o := buildOptions(opts)
	return &SettingsService{store: store, logger: o.logger.Named("settings")}
}

// Branding returns the stored branding or the built-in theme.
func (s *SettingsService) Branding(ctx context.Context) (BrandingConfig, error) {
	var cfg BrandingConfig
	found, err := s.read(ctx, BrandingConfigKey, &cfg)
	if err != nil {
		return BrandingConfig{}, err
	}
	if !found {
		return domain.DefaultBrandingConfig(), nil
	}
	return cfg, nil
}

// UpdateBranding validates and stores cfg.
func (s *SettingsService) UpdateBranding(ctx context.Context, cfg BrandingConfig) error {
	if err := ValidateStruct(cfg); err != nil {
		return err
	}
	return s.write(ctx, BrandingConfigKey, cfg)
}

// Email returns the stored email configuration or the default.
func (s *SettingsService) Email(ctx context.Context) (EmailConfig, error) {
	var cfg EmailConfig
	found, err := s.read(ctx, EmailConfigKey, &cfg)
	if err != nil {
		return EmailConfig{}, err
	}
	if !found {
		return DefaultEmailConfig(), nil
	}
	return cfg, nil
}

// UpdateEmail validates and stores cfg.
func (s *SettingsService) UpdateEmail(ctx context.Context, cfg EmailConfig) error {
	if err := ValidateStruct(cfg); err != nil {
		return err
	}
	if err := validateEmailProvider(cfg); err != nil {
		return err
	}
	return s.write(ctx, EmailConfigKey, cfg)
}

// validateEmailProvider checks the settings each transport needs.
func validateEmailProvider(cfg EmailConfig) error {
	var missing []string
	switch cfg.Provider {
	case domain.EmailSMTP:
		if cfg.Settings.Host == "" {
			missing = append(missing, "settings.host is required for smtp")
		}
	case domain.EmailSendGrid:
		if cfg.Settings.APIKey == "" {
			missing = append(missing, "settings.apiKey is required for sendgrid")
		}
	case domain.EmailSES:
		if cfg.Settings.Region == "" {
			missing = append(missing, "settings.region is required for ses")
		}
	}
	if len(missing) > 0 {
		return ValidationError{Fields: missing}
	}
	return nil
}

// read decodes the document under key into a zero value. found is false when
// nothing is stored yet.
func (s *SettingsService) read(ctx context.Context, key string, into any) (found bool, err error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *SettingsService) write(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Put(ctx, key, payload); err != nil {
		s.logger.Error("persist settings", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("persist %s: %w", key, err)
	}
	s.logger.Info("settings updated", zap.String("key", key))
	return nil
}
