package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpadmin/internal/core"
	"fpadmin/internal/kv"
	"fpadmin/pkg/domain"
)

func TestBrandingRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := core.NewSettingsService(kv.NewMemory())

	got, err := svc.Branding(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBrandingConfig(), got)

	logo := "https://cdn.example.org/logo.png"
	want := domain.BrandingConfig{
		LogoURL: &logo,
		Font:    "Roboto",
		Colors:  domain.BrandingColors{Primary: "#000000", Secondary: "#ffffff", Accent: "#ff0000"},
	}
	require.NoError(t, svc.UpdateBranding(ctx, want))
	got, err = svc.Branding(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBrandingRejectsBadColor(t *testing.T) {
	svc := core.NewSettingsService(kv.NewMemory())
	cfg := domain.DefaultBrandingConfig()
	cfg.Colors.Accent = "orange"
	err := svc.UpdateBranding(context.Background(), cfg)
	var ve core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"colors.accent must be a hex color"}, ve.Fields)
}

func TestEmailProviderRequirements(t *testing.T) {
	ctx := context.Background()
	svc := core.NewSettingsService(kv.NewMemory())

	got, err := svc.Email(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultEmailConfig(), got)

	base := domain.EmailSettings{FromName: "Secretaría", FromEmail: "fp@example.org"}
	cases := []struct {
		name    string
		cfg     domain.EmailConfig
		wantErr string
	}{
		{name: "smtp without host", cfg: domain.EmailConfig{Provider: domain.EmailSMTP, Settings: base}, wantErr: "settings.host is required for smtp"},
		{name: "sendgrid without key", cfg: domain.EmailConfig{Provider: domain.EmailSendGrid, Settings: base}, wantErr: "settings.apiKey is required for sendgrid"},
		{name: "ses without region", cfg: domain.EmailConfig{Provider: domain.EmailSES, Settings: base}, wantErr: "settings.region is required for ses"},
		{name: "unknown provider", cfg: domain.EmailConfig{Provider: "pigeon", Settings: base}, wantErr: "provider must be one of: smtp sendgrid ses"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.UpdateEmail(ctx, tc.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	valid := domain.EmailConfig{Provider: domain.EmailSES, Settings: base, Enabled: true}
	valid.Settings.Region = "eu-west-1"
	require.NoError(t, svc.UpdateEmail(ctx, valid))
	got, err = svc.Email(ctx)
	require.NoError(t, err)
	assert.Equal(t, valid, got)
}

func TestStoredSettingsAreNotMergedWithDefaults(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	svc := core.NewSettingsService(store)

	doc := `{"provider":"ses","settings":{"region":"eu-west-1","fromName":"Secretaría","fromEmail":"fp@example.org"},"enabled":true}`
	require.NoError(t, store.Put(ctx, core.EmailConfigKey, []byte(doc)))
	got, err := svc.Email(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.Settings.Port, "default smtp port leaked into a stored ses config")
	assert.Equal(t, domain.EmailSES, got.Provider)

	sendgrid := domain.EmailConfig{
		Provider: domain.EmailSendGrid,
		Settings: domain.EmailSettings{APIKey: "SG.key", FromName: "Secretaría", FromEmail: "fp@example.org"},
	}
	require.NoError(t, svc.UpdateEmail(ctx, sendgrid))
	got, err = svc.Email(ctx)
	require.NoError(t, err)
	assert.Equal(t, sendgrid, got)

	require.NoError(t, store.Put(ctx, core.BrandingConfigKey, []byte(`{"font":"Roboto","colors":{"primary":"#000000"}}`)))
	branding, err := svc.Branding(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.BrandingConfig{Font: "Roboto", Colors: domain.BrandingColors{Primary: "#000000"}}, branding)
}
