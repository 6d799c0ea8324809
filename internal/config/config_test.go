package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ELEVEN_LABS_API_KEY", "el-key")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("SMTP_EMAIL", "sender@example.com")
	t.Setenv("SMTP_APP_PASSWORD", "app-password")
}

func clearOptionalEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_MODEL", "SMTP_SERVER", "SMTP_PORT", "SUMMARY_RECIPIENT",
		"SUMMARY_PROMPT_TEMPLATE", "POLL_INTERVAL_SECONDS", "TRANSCRIPT_TIMEZONE",
		"AUDIT_LOG_PATH", "APP_LOG_PATH", "FRONTDESK_PORT", "LOG_LEVEL",
	} {
		// t.Setenv registers the restore; unset so defaults apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("expected default model, got %q", cfg.GeminiModel)
	}
	if cfg.SMTPServer != "smtp.gmail.com" {
		t.Errorf("expected default smtp server, got %q", cfg.SMTPServer)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("expected default smtp port 587, got %d", cfg.SMTPPort)
	}
	if cfg.PollIntervalSeconds != 60 {
		t.Errorf("expected default poll interval 60, got %d", cfg.PollIntervalSeconds)
	}
	if cfg.PollInterval() != 60*time.Second {
		t.Errorf("expected 60s interval, got %v", cfg.PollInterval())
	}
	if cfg.TranscriptTimezone != "Asia/Kolkata" {
		t.Errorf("expected default timezone, got %q", cfg.TranscriptTimezone)
	}
	if cfg.AuditLogPath != "conversation_emails.log" {
		t.Errorf("expected default audit log path, got %q", cfg.AuditLogPath)
	}
	if cfg.AppLogPath != "app.log" {
		t.Errorf("expected default app log path, got %q", cfg.AppLogPath)
	}
	if cfg.Port != 8760 {
		t.Errorf("expected default port 8760, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.Recipient == "" {
		t.Error("expected a default recipient")
	}
	if cfg.PromptTemplate != "" {
		t.Errorf("expected empty prompt template by default, got %q", cfg.PromptTemplate)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("SMTP_SERVER", "mail.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SUMMARY_RECIPIENT", "desk@example.com")
	t.Setenv("POLL_INTERVAL_SECONDS", "15")
	t.Setenv("TRANSCRIPT_TIMEZONE", "Europe/Berlin")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SMTPServer != "mail.example.com" || cfg.SMTPPort != 2525 {
		t.Errorf("unexpected smtp settings: %s:%d", cfg.SMTPServer, cfg.SMTPPort)
	}
	if cfg.Recipient != "desk@example.com" {
		t.Errorf("expected custom recipient, got %q", cfg.Recipient)
	}
	if cfg.PollInterval() != 15*time.Second {
		t.Errorf("expected 15s interval, got %v", cfg.PollInterval())
	}
	if cfg.TranscriptTimezone != "Europe/Berlin" {
		t.Errorf("expected custom timezone, got %q", cfg.TranscriptTimezone)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.LogLevel)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing GEMINI_API_KEY")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("expected the missing key to be named, got %v", err)
	}
}

func TestValidate_InvalidRecipient(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("SUMMARY_RECIPIENT", "not-an-email")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid recipient")
	}
}

func TestValidate_InvalidTimezone(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("TRANSCRIPT_TIMEZONE", "Mars/Olympus")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
}

func TestValidate_NonPositivePollInterval(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("POLL_INTERVAL_SECONDS", "-5")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative poll interval")
	}
}

func TestValidate_PromptTemplatePlaceholder(t *testing.T) {
	setRequiredEnv(t)
	clearOptionalEnv(t)
	t.Setenv("SUMMARY_PROMPT_TEMPLATE", "summarize it without a placeholder")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for template without %%s placeholder")
	}

	t.Setenv("SUMMARY_PROMPT_TEMPLATE", "Transcript:\n%s\nReply with Email: and Summary: lines.")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error for valid template: %v", err)
	}
}
