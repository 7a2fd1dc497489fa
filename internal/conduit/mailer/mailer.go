// Package mailer sends transactional email. The Resend backend is used in
// production; the stdout backend serves local development, where the
// confirmation code just gets logged.
package mailer

import "context"

// Message is a rendered email ready to send.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
