package email

// Provider is the outgoing mail interface used by the services. Delivery is
// always fire-and-forget from the caller's point of view: a failed send never
// affects the operation that triggered it.
type Provider interface {
	// Send delivers a single message.
	Send(email *Email) error

	// SendTemplate renders a named template and delivers it.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}

// TemplateRenderer renders named HTML templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
