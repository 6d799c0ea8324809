package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lakeviewhq/frontdesk/internal/extract"
)

type Config struct {
	ElevenLabsAPIKey string `env:"ELEVEN_LABS_API_KEY"`
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	GeminiModel      string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	SMTPEmail       string `env:"SMTP_EMAIL"`
	SMTPAppPassword string `env:"SMTP_APP_PASSWORD"`
	SMTPServer      string `env:"SMTP_SERVER" envDefault:"smtp.gmail.com"`
	SMTPPort        int    `env:"SMTP_PORT" envDefault:"587"`

	Recipient           string `env:"SUMMARY_RECIPIENT" envDefault:"ashimlugun09@gmail.com"`
	PromptTemplate      string `env:"SUMMARY_PROMPT_TEMPLATE"`
	PollIntervalSeconds int    `env:"POLL_INTERVAL_SECONDS" envDefault:"60"`
	TranscriptTimezone  string `env:"TRANSCRIPT_TIMEZONE" envDefault:"Asia/Kolkata"`

	AuditLogPath string `env:"AUDIT_LOG_PATH" envDefault:"conversation_emails.log"`
	AppLogPath   string `env:"APP_LOG_PATH" envDefault:"app.log"`
	Port         int    `env:"FRONTDESK_PORT" envDefault:"8760"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and validates the result. A missing required
// value means the process must not enter the monitoring loop.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.SMTPPort <= 0 {
		return fmt.Errorf("SMTP_PORT must be positive, got %d", c.SMTPPort)
	}
	if c.Port <= 0 {
		return fmt.Errorf("FRONTDESK_PORT must be positive, got %d", c.Port)
	}
	if c.PollIntervalSeconds <= 0 {
		return fmt.Errorf("POLL_INTERVAL_SECONDS must be positive, got %d", c.PollIntervalSeconds)
	}
	if !extract.ValidateEmail(c.Recipient) {
		return fmt.Errorf("SUMMARY_RECIPIENT is not a valid email address: %q", c.Recipient)
	}
	if _, err := time.LoadLocation(c.TranscriptTimezone); err != nil {
		return fmt.Errorf("TRANSCRIPT_TIMEZONE is invalid: %w", err)
	}
	if c.PromptTemplate != "" && strings.Count(c.PromptTemplate, "%s") != 1 {
		return fmt.Errorf("SUMMARY_PROMPT_TEMPLATE must contain exactly one %%s placeholder")
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "ELEVEN_LABS_API_KEY", value: c.ElevenLabsAPIKey},
		{name: "GEMINI_API_KEY", value: c.GeminiAPIKey},
		{name: "SMTP_EMAIL", value: c.SMTPEmail},
		{name: "SMTP_APP_PASSWORD", value: c.SMTPAppPassword},
	}
}

// PollInterval returns the fixed sleep between polling cycles.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}
