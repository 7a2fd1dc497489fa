package mailer

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

var confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation_html").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #373a3c;">
    <h2>Confirm your email</h2>
    <p>Welcome to Conduit, {{.Username}}!</p>
    <p>Enter this code to confirm your email address:</p>
    <p style="font-size: 28px; letter-spacing: 4px; font-weight: bold;">{{.Code}}</p>
    <p>The code expires in {{.ExpiresIn}}. If you did not sign up, ignore this email.</p>
  </body>
</html>
`))

var confirmationText = texttemplate.Must(texttemplate.New("confirmation_text").Parse(`Welcome to Conduit, {{.Username}}!

Enter this code to confirm your email address: {{.Code}}

The code expires in {{.ExpiresIn}}. If you did not sign up, ignore this email.
`))

// RenderConfirmation renders the email-confirmation message for a user.
func RenderConfirmation(to, username, code, expiresIn string) (Message, error) {
	data := struct {
		Username  string
		Code      string
		ExpiresIn string
	}{username, code, expiresIn}

	var html, text strings.Builder
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("mailer: render html: %w", err)
	}
	if err := confirmationText.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("mailer: render text: %w", err)
	}

	return Message{
		To:      to,
		Subject: "Confirm your email address",
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
