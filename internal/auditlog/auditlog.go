package auditlog

import (
	"fmt"
	"os"
)

// Log is the append-only audit trail of processed conversations. It is
// opened once per process, kept open for the process lifetime, and never
// read back by the program.
type Log struct {
	f *os.File
}

func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &Log{f: f}, nil
}

func (l *Log) Close() error {
	return l.f.Close()
}

// Email records the customer address derived for a conversation.
func (l *Log) Email(conversationID, email string) error {
	return l.writef("Conversation %s: %s\n", conversationID, email)
}

// Details records the full conversation report.
func (l *Log) Details(conversationID, report string) error {
	return l.writef("Conversation %s Details:\n%s\n", conversationID, report)
}

// Summary records the generated summary text.
func (l *Log) Summary(conversationID, summary string) error {
	return l.writef("Gemini Summary for %s:\n%s\n", conversationID, summary)
}

// SendStatus records the outcome of the outbound summary email.
func (l *Log) SendStatus(conversationID, recipient string, ok bool, detail string) error {
	status := "Success"
	if !ok {
		status = "Failed - " + detail
	}
	return l.writef("Summary Email Status for %s to %s: %s\n", conversationID, recipient, status)
}

func (l *Log) writef(format string, args ...any) error {
	if _, err := fmt.Fprintf(l.f, format, args...); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}
