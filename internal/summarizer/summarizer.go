package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/lakeviewhq/frontdesk/internal/elevenlabs"
	"github.com/lakeviewhq/frontdesk/internal/extract"
)

const (
	retryAttempts = 3
	emailPrefix   = "Email:"

	// Placeholder for transcript turns without spoken content.
	emptyMessagePlaceholder = "No message (e.g., tool call)"
)

// ErrEmptyTranscript is returned when there is nothing to summarize.
var ErrEmptyTranscript = errors.New("transcript is empty")

// TextGenerator is the slice of the Gemini client the summarizer needs.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Summarizer struct {
	llm      TextGenerator
	template string
	logger   *slog.Logger

	retryDelay time.Duration
}

// New creates a summarizer. template overrides the built-in prompt when
// non-empty; it must contain a single %s for the transcript block.
func New(llm TextGenerator, template string, logger *slog.Logger) *Summarizer {
	if template == "" {
		template = defaultPromptTemplate
	}
	return &Summarizer{
		llm:        llm,
		template:   template,
		logger:     logger,
		retryDelay: 2 * time.Second,
	}
}

// Summarize renders the transcript into the prompt, calls the model and
// returns the two-line "Email: / Summary:" response with the address
// lowercased. Provider failures are retried three times with a fixed delay
// before giving up.
func (s *Summarizer) Summarize(ctx context.Context, transcript []elevenlabs.TranscriptEntry) (string, error) {
	if len(transcript) == 0 {
		return "", ErrEmptyTranscript
	}

	prompt := fmt.Sprintf(s.template, RenderTranscript(transcript))

	raw, err := retry.DoWithData(
		func() (string, error) {
			return s.llm.GenerateContent(ctx, prompt)
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			s.logger.Info("retrying summary generation", "attempt", attempt+1, "error", err)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return LowercaseEmailLine(raw), nil
}

// RenderTranscript formats entries one per line as "[<secs>s] <role>: <message>".
func RenderTranscript(transcript []elevenlabs.TranscriptEntry) string {
	lines := make([]string, 0, len(transcript))
	for _, entry := range transcript {
		role := entry.Role
		if role == "" {
			role = "Unknown"
		}
		msg := entry.Message
		if msg == "" {
			msg = emptyMessagePlaceholder
		}
		lines = append(lines, fmt.Sprintf("[%ds] %s: %s", entry.TimeInCallSecs, role, msg))
	}
	return strings.Join(lines, "\n")
}

// ExtractEmail pulls a validated address off the "Email:" line of a model
// response, lowercased. Returns "" when the line is missing, reads "None",
// or carries an invalid address.
func ExtractEmail(response string) string {
	for _, line := range strings.Split(response, "\n") {
		addr, ok := emailLineAddress(line)
		if ok {
			return strings.ToLower(addr)
		}
	}
	return ""
}

// LowercaseEmailLine rewrites the address on the "Email:" line to lower
// case, leaving all other lines untouched. Applying it twice is a no-op.
func LowercaseEmailLine(response string) string {
	if response == "" {
		return response
	}
	lines := strings.Split(response, "\n")
	for i, line := range lines {
		if addr, ok := emailLineAddress(line); ok {
			lines[i] = emailPrefix + " " + strings.ToLower(addr)
		}
	}
	return strings.Join(lines, "\n")
}

// emailLineAddress returns the validated address on an "Email:" line, if any.
func emailLineAddress(line string) (string, bool) {
	if !strings.HasPrefix(line, emailPrefix) {
		return "", false
	}
	addr := strings.TrimSpace(strings.TrimPrefix(line, emailPrefix))
	if addr == "" || addr == "None" || !extract.ValidateEmail(addr) {
		return "", false
	}
	return addr, true
}
