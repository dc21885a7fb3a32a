// Package mail defines the outbound mail boundary. Delivery is an external
// collaborator; the core only composes messages and hands them off.
package mail

import (
	"context"
	"log/slog"

	"microlog/internal/middleware"
	"microlog/internal/models"
)

// Mailer is consumed by the password-recovery flow.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to *models.User, token string) error
}

// LogMailer writes reset mails to the structured log instead of delivering
// them. Used in development and tests, and whenever no SMTP relay is wired.
type LogMailer struct {
	Sender string
}

// NewLogMailer returns a LogMailer sending from the given address.
func NewLogMailer(sender string) *LogMailer {
	return &LogMailer{Sender: sender}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to *models.User, token string) error {
	middleware.Logger.InfoContext(ctx, "password reset email",
		slog.String("sender", m.Sender),
		slog.String("to", to.Email),
		slog.String("username", to.Username),
		slog.String("token", token),
	)
	return nil
}
