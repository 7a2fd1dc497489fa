package mailer

import (
	"context"
	"log/slog"
)

// StdoutMailer logs mail instead of sending it. Default in dev so the
// confirmation code can be read off the server log.
type StdoutMailer struct {
	logger *slog.Logger
}

func NewStdoutMailer(logger *slog.Logger) *StdoutMailer {
	return &StdoutMailer{logger: logger}
}

func (m *StdoutMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("email (stdout mailer)",
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return nil
}
