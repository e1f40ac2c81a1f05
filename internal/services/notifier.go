package services

import (
	"jobhub_backend/internal/email"
	"jobhub_backend/internal/logger"
)

// Notification is an outgoing email queued by a service operation. Operations
// that run inside a transaction collect notifications first and dispatch them
// only after the transaction commits, so a rolled-back change never produces
// a message.
type Notification struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

// Notifier delivers queued notifications through the email provider.
// Dispatch is fire-and-forget: failures are logged and never propagated.
type Notifier struct {
	provider email.Provider
}

func NewNotifier(provider email.Provider) *Notifier {
	return &Notifier{provider: provider}
}

func (n *Notifier) Dispatch(notes []Notification) {
	if n == nil || n.provider == nil || len(notes) == 0 {
		return
	}
	go func() {
		for _, note := range notes {
			if err := n.provider.SendTemplate(note.To, note.Subject, note.Template, note.Data); err != nil {
				logger.Error("notification send failed",
					"template", note.Template,
					"error", err)
			}
		}
	}()
}
