package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lakeviewhq/frontdesk/internal/api"
	"github.com/lakeviewhq/frontdesk/internal/auditlog"
	"github.com/lakeviewhq/frontdesk/internal/config"
	"github.com/lakeviewhq/frontdesk/internal/elevenlabs"
	"github.com/lakeviewhq/frontdesk/internal/gemini"
	"github.com/lakeviewhq/frontdesk/internal/monitor"
	"github.com/lakeviewhq/frontdesk/internal/notifier"
	"github.com/lakeviewhq/frontdesk/internal/summarizer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := setupLogging(cfg.AppLogPath, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to open app log", "path", cfg.AppLogPath, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.Info("frontdesk starting", "port", cfg.Port, "poll_interval_s", cfg.PollIntervalSeconds)

	audit, err := auditlog.Open(cfg.AuditLogPath)
	if err != nil {
		slog.Error("failed to open audit log", "path", cfg.AuditLogPath, "error", err)
		os.Exit(1)
	}
	defer audit.Close()

	loc, err := time.LoadLocation(cfg.TranscriptTimezone)
	if err != nil {
		slog.Error("invalid transcript timezone", "timezone", cfg.TranscriptTimezone, "error", err)
		os.Exit(1)
	}

	fetcher := elevenlabs.NewClient(cfg.ElevenLabsAPIKey)
	llm := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	summaries := summarizer.New(llm, cfg.PromptTemplate, slog.Default())
	mailer := notifier.New(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPAppPassword, slog.Default())

	if err := mailer.VerifyCredentials(); err != nil {
		slog.Error("SMTP credential check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("SMTP credentials validated")

	mon := monitor.New(fetcher, summaries, mailer, audit, monitor.Settings{
		Recipient:    cfg.Recipient,
		PollInterval: cfg.PollInterval(),
		Location:     loc,
	}, slog.Default())

	srv := api.NewServer(cfg.Port, mon.Status)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting conversation monitoring", "recipient", cfg.Recipient)
	mon.Run(ctx)
	slog.Info("frontdesk stopped")
}

func setupLogging(path, level string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, f), &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return f, nil
}
