package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/textproto"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/lakeviewhq/frontdesk/internal/extract"
)

const retryAttempts = 3

// errAuth marks an SMTP authentication rejection. Auth failures are
// reported distinctly and never retried.
var errAuth = errors.New("smtp authentication failed")

// Notifier sends conversation summaries over an authenticated STARTTLS
// SMTP session.
type Notifier struct {
	from   string
	dialer *gomail.Dialer
	logger *slog.Logger

	retryDelay time.Duration
}

func New(host string, port int, from, password string, logger *slog.Logger) *Notifier {
	return &Notifier{
		from:       from,
		dialer:     gomail.NewDialer(host, port, from, password),
		logger:     logger,
		retryDelay: 2 * time.Second,
	}
}

// VerifyCredentials opens and closes an authenticated session without
// sending anything. Used as a startup preflight.
func (n *Notifier) VerifyCredentials() error {
	if n.from == "" || n.dialer.Password == "" {
		return errors.New("missing smtp credentials")
	}
	s, err := n.dialer.Dial()
	if err != nil {
		if isAuthError(err) {
			return errAuth
		}
		return fmt.Errorf("smtp dial: %w", err)
	}
	return s.Close()
}

// Send delivers the summary for a conversation to a single recipient and
// reports success plus a short detail string for the audit log. Validation
// failures fail fast without opening a connection; transport failures are
// retried three times with a fixed delay; authentication failures are not
// retried.
func (n *Notifier) Send(ctx context.Context, to, summary, conversationID string) (bool, string) {
	if n.from == "" || n.dialer.Password == "" {
		n.logger.Error("missing smtp credentials")
		return false, "Missing SMTP credentials"
	}
	if !extract.ValidateEmail(to) {
		n.logger.Error("invalid recipient address", "to", to)
		return false, "Invalid email address"
	}

	msg := n.buildMessage(to, summary, conversationID)

	err := retry.Do(
		func() error { return n.dialAndSend(msg) },
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(n.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return !errors.Is(err, errAuth) }),
		retry.OnRetry(func(attempt uint, err error) {
			n.logger.Info("retrying email send", "attempt", attempt+1, "to", to, "error", err)
		}),
	)
	switch {
	case err == nil:
		n.logger.Info("email sent", "to", to, "conversation_id", conversationID)
		return true, "Success"
	case errors.Is(err, errAuth):
		n.logger.Error("smtp authentication failed", "to", to)
		return false, "Authentication error"
	default:
		n.logger.Error("email send failed", "to", to, "error", err)
		return false, err.Error()
	}
}

// dialAndSend runs one delivery attempt. The session is closed on every
// exit path.
func (n *Notifier) dialAndSend(msg *gomail.Message) error {
	s, err := n.dialer.Dial()
	if err != nil {
		if isAuthError(err) {
			return errAuth
		}
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer s.Close()

	if err := gomail.Send(s, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (n *Notifier) buildMessage(to, summary, conversationID string) *gomail.Message {
	body := summary
	if body == "" {
		body = "No summary available."
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Conversation Summary (ID: %s)", conversationID))
	msg.SetHeader("Message-ID", fmt.Sprintf("<%s@frontdesk>", uuid.NewString()))
	msg.SetBody("text/plain", body)
	msg.AddAlternative("text/html", fmt.Sprintf(
		"<h2>Conversation Summary</h2><p>%s</p><p>Conversation ID: %s</p><p>Best regards,<br>The Hotel Team</p>",
		body, conversationID,
	))
	return msg
}

// isAuthError reports whether err is an SMTP authentication rejection
// (reply code 534 or 535) rather than a transport failure.
func isAuthError(err error) bool {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		return tpErr.Code == 534 || tpErr.Code == 535
	}
	return false
}
