package domain

// MeetingProvider tags the video meeting integration in use.
type MeetingProvider string

// Known meeting providers.
const (
	ProviderJitsiMeet  MeetingProvider = "jitsi-meet"
	ProviderGoogleMeet MeetingProvider = "google-meet"
)

// MeetingSettings is the provider specific settings bag. Google Meet uses the
// OAuth client fields, Jitsi Meet uses Domain and RoomPrefix.
type MeetingSettings struct {
	ClientID     string `json:"clientId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	RedirectURI  string `json:"redirectUri,omitempty" validate:"omitempty,url"`
	Domain       string `json:"domain,omitempty" validate:"omitempty,hostname_port|hostname"`
	RoomPrefix   string `json:"roomPrefix,omitempty" validate:"omitempty,max=64"`
}

// MeetingConfig is the persisted video meeting configuration.
type MeetingConfig struct {
	Provider MeetingProvider `json:"provider" validate:"required"`
	Settings MeetingSettings `json:"settings"`
	Enabled  bool            `json:"enabled"`
}

// DefaultMeetingConfig returns the configuration used before anything has been stored.
func DefaultMeetingConfig() MeetingConfig {
	return MeetingConfig{
		Provider: ProviderJitsiMeet,
		Settings: MeetingSettings{
			Domain:     "meet.jit.si",
			RoomPrefix: "ri-fp-",
		},
		Enabled: false,
	}
}

// BrandingColors holds the theme palette.
type BrandingColors struct {
	Primary   string `json:"primary" validate:"required,hexcolor"`
	Secondary string `json:"secondary" validate:"required,hexcolor"`
	Accent    string `json:"accent" validate:"required,hexcolor"`
}

// BrandingConfig customizes the console look and feel.
type BrandingConfig struct {
	LogoURL    *string        `json:"logoUrl" validate:"omitempty,url"`
	FaviconURL *string        `json:"faviconUrl" validate:"omitempty,url"`
	Font       string         `json:"font" validate:"required"`
	Colors     BrandingColors `json:"colors"`
}

// DefaultBrandingConfig returns the built-in theme.
func DefaultBrandingConfig() BrandingConfig {
	return BrandingConfig{
		Font: "Inter",
		Colors: BrandingColors{
			Primary:   "#2563eb",
			Secondary: "#4b5563",
			Accent:    "#f59e0b",
		},
	}
}

// EmailProvider selects the outbound mail transport.
type EmailProvider string

// Supported email providers.
const (
	EmailSMTP     EmailProvider = "smtp"
	EmailSendGrid EmailProvider = "sendgrid"
	EmailSES      EmailProvider = "ses"
)

// EmailSettings is the provider specific settings bag.
type EmailSettings struct {
	Host      string `json:"host,omitempty"`
	Port      int    `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	Secure    bool   `json:"secure,omitempty"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	APIKey    string `json:"apiKey,omitempty"`
	Region    string `json:"region,omitempty"`
	FromName  string `json:"fromName" validate:"required"`
	FromEmail string `json:"fromEmail" validate:"required,email"`
}

// EmailConfig is the persisted outbound email configuration.
type EmailConfig struct {
	Provider EmailProvider `json:"provider" validate:"required,oneof=smtp sendgrid ses"`
	Settings EmailSettings `json:"settings"`
	Enabled  bool          `json:"enabled"`
}
