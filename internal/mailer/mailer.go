// Package mailer hands outgoing mail to a delivery worker. The API process
// never talks SMTP itself.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ConfirmationMessage builds the signup mail carrying code.
func ConfirmationMessage(from, to, username, code string, now time.Time) Message {
	return Message{
		ID:      uuid.NewString(),
		From:    from,
		To:      to,
		Subject: "yamdb confirmation code",
		Body: fmt.Sprintf("Hello, %s!\n\nYour confirmation code: %s\n\n"+
			"Exchange it for an access token at POST /api/v1/auth/token.\n", username, code),
		CreatedAt: now.UTC(),
	}
}

// LogSender writes messages to the log instead of delivering them. Used in
// development when Redis is unavailable.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, msg Message) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "mail not delivered, logged instead",
		"id", msg.ID,
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
