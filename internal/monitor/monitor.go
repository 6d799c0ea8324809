package monitor

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lakeviewhq/frontdesk/internal/auditlog"
	"github.com/lakeviewhq/frontdesk/internal/elevenlabs"
	"github.com/lakeviewhq/frontdesk/internal/extract"
)

// How many of the newest listings the bootstrap scans for a completed
// conversation.
const bootstrapScanSize = 10

// Fetcher is the slice of the ElevenLabs client the monitor uses.
type Fetcher interface {
	ListConversations(ctx context.Context, cursor string, pageSize int) (*elevenlabs.ConversationPage, error)
	GetConversation(ctx context.Context, id string) (*elevenlabs.Conversation, error)
}

// Summarizer produces the two-line "Email: / Summary:" response for a
// transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript []elevenlabs.TranscriptEntry) (string, error)
}

// Sender delivers a summary email and reports the outcome.
type Sender interface {
	Send(ctx context.Context, to, summary, conversationID string) (bool, string)
}

// Settings carries the tunables of the polling loop. Defaults live in the
// config package; the monitor takes them as given.
type Settings struct {
	Recipient    string
	PollInterval time.Duration
	Location     *time.Location
}

// Status is a read-only snapshot published for the HTTP API.
type Status struct {
	LastConversationID     string    `json:"last_conversation_id"`
	CyclesCompleted        uint64    `json:"cycles_completed"`
	ConversationsProcessed uint64    `json:"conversations_processed"`
	StartedAt              time.Time `json:"started_at"`
}

// Monitor watches for newly completed conversations and drives extraction,
// summarization, notification and audit logging. All state is touched only
// by the polling goroutine; readers get immutable snapshots.
type Monitor struct {
	fetcher    Fetcher
	summarizer Summarizer
	sender     Sender
	audit      *auditlog.Log
	settings   Settings
	logger     *slog.Logger

	lastConversationID string
	cycles             uint64
	processed          uint64
	startedAt          time.Time
	status             atomic.Pointer[Status]
}

func New(f Fetcher, s Summarizer, n Sender, audit *auditlog.Log, settings Settings, logger *slog.Logger) *Monitor {
	return &Monitor{
		fetcher:    f,
		summarizer: s,
		sender:     n,
		audit:      audit,
		settings:   settings,
		logger:     logger,
	}
}

// Run bootstraps the last-seen id and then polls until ctx is cancelled.
// The fixed sleep happens after every cycle regardless of what the cycle
// did, including fetch failures.
func (m *Monitor) Run(ctx context.Context) {
	m.Bootstrap(ctx)
	if m.lastConversationID != "" {
		m.logger.Info("monitoring after id", "conversation_id", m.lastConversationID)
	} else {
		m.logger.Info("no prior completed conversations found")
	}

	for {
		m.RunCycle(ctx)
		select {
		case <-ctx.Done():
			m.logger.Info("monitoring interrupted")
			return
		case <-time.After(m.settings.PollInterval):
		}
	}
}

// Bootstrap seeds the last-seen id with the most recent completed
// conversation, scanning at most the ten newest listings in listing order.
// The id stays empty when no completed conversation exists yet.
func (m *Monitor) Bootstrap(ctx context.Context) {
	m.startedAt = time.Now().UTC()
	defer m.publishStatus()

	page, err := m.fetcher.ListConversations(ctx, "", bootstrapScanSize)
	if err != nil {
		m.logger.Warn("bootstrap listing failed", "error", err)
		return
	}
	if len(page.Conversations) == 0 {
		m.logger.Info("no conversations found for last id")
		return
	}

	for _, stub := range page.Conversations {
		conv, err := m.fetcher.GetConversation(ctx, stub.ConversationID)
		if err != nil {
			m.logger.Warn("bootstrap detail fetch failed", "conversation_id", stub.ConversationID, "error", err)
			continue
		}
		if conv.Status == elevenlabs.StatusDone {
			m.lastConversationID = conv.ConversationID
			m.logger.Info("found last completed conversation", "conversation_id", conv.ConversationID)
			return
		}
	}
	m.logger.Info("no completed conversations found for last id")
}

// RunCycle examines the single newest conversation and processes it when it
// is newly completed. Fetch failures leave the last-seen id untouched and
// are treated as "no data this cycle".
func (m *Monitor) RunCycle(ctx context.Context) {
	defer func() {
		m.cycles++
		m.publishStatus()
	}()

	page, err := m.fetcher.ListConversations(ctx, "", 1)
	if err != nil {
		m.logger.Warn("list conversations failed", "error", err)
		return
	}
	if len(page.Conversations) == 0 {
		m.logger.Info("no new conversations")
		return
	}

	latest := page.Conversations[0]
	if latest.ConversationID == m.lastConversationID {
		return
	}

	conv, err := m.fetcher.GetConversation(ctx, latest.ConversationID)
	if err != nil {
		m.logger.Warn("conversation detail fetch failed", "conversation_id", latest.ConversationID, "error", err)
		return
	}
	if conv.Status != elevenlabs.StatusDone {
		return
	}

	m.logger.Info("new completed conversation", "conversation_id", conv.ConversationID)
	m.lastConversationID = conv.ConversationID
	m.process(ctx, conv)
	m.processed++
}

// process runs extraction, summarization, notification and audit logging
// for one completed conversation. A conversation whose summary generation
// fails is still audited, just without a summary line or outbound email.
func (m *Monitor) process(ctx context.Context, conv *elevenlabs.Conversation) {
	id := conv.ConversationID

	var summary string
	if len(conv.Transcript) == 0 {
		m.logger.Warn("transcript is empty, skipping summary", "conversation_id", id)
	} else {
		var err error
		summary, err = m.summarizer.Summarize(ctx, conv.Transcript)
		if err != nil {
			m.logger.Warn("no summary generated", "conversation_id", id, "error", err)
		}
	}

	email := extract.CustomerEmail(conv)
	if email != "" {
		m.logger.Info("extracted customer email", "conversation_id", id, "email", email)
	} else {
		m.logger.Warn("no email found", "conversation_id", id)
	}

	report := buildReport(conv, m.settings.Location)

	if summary != "" {
		m.logger.Info("sending summary", "conversation_id", id, "to", m.settings.Recipient)
		ok, detail := m.sender.Send(ctx, m.settings.Recipient, summary, id)
		m.auditWrite(m.audit.SendStatus(id, m.settings.Recipient, ok, detail))
	}

	if email != "" {
		m.auditWrite(m.audit.Email(id, email))
	}
	m.auditWrite(m.audit.Details(id, report))
	if summary != "" {
		m.auditWrite(m.audit.Summary(id, summary))
	}
}

func (m *Monitor) auditWrite(err error) {
	if err != nil {
		m.logger.Error("audit log write failed", "error", err)
	}
}

func (m *Monitor) publishStatus() {
	m.status.Store(&Status{
		LastConversationID:     m.lastConversationID,
		CyclesCompleted:        m.cycles,
		ConversationsProcessed: m.processed,
		StartedAt:              m.startedAt,
	})
}

// Status returns the latest published snapshot. Safe for concurrent
// readers; never blocks the polling loop.
func (m *Monitor) Status() Status {
	if s := m.status.Load(); s != nil {
		return *s
	}
	return Status{}
}
