// Package contact validates contact form submissions and delivers them by
// SMTP.
package contact

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

const maxMessageLength = 5000

// Message is one contact form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// ValidationError names the form field that failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Normalize trims every field.
func (m Message) Normalize() Message {
	return Message{
		Name:  strings.TrimSpace(m.Name),
		Email: strings.TrimSpace(m.Email),
		Body:  strings.TrimSpace(m.Body),
	}
}

// Validate checks a normalized message.
func (m Message) Validate() error {
	switch {
	case m.Name == "":
		return &ValidationError{Field: "fullName", Reason: "name is required"}
	case strings.ContainsAny(m.Name, "\r\n"):
		return &ValidationError{Field: "fullName", Reason: "name must be a single line"}
	case m.Email == "":
		return &ValidationError{Field: "email", Reason: "email is required"}
	case m.Body == "":
		return &ValidationError{Field: "message", Reason: "message is required"}
	case len(m.Body) > maxMessageLength:
		return &ValidationError{Field: "message", Reason: fmt.Sprintf("message is longer than %d characters", maxMessageLength)}
	}
	addr, err := mail.ParseAddress(m.Email)
	if err != nil || addr.Address != m.Email {
		return &ValidationError{Field: "email", Reason: "email is not a valid address"}
	}
	return nil
}

// Compose renders the RFC 822 message delivered to the site owner.
func Compose(from, to string, m Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", m.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Body)

	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("Reply-To: " + m.Email + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}
