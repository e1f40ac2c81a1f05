package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names used by the services.
const (
	TemplateWelcome         = "welcome"
	TemplatePasswordChanged = "password_changed"
	TemplateAccountDeleted  = "account_deleted"
	TemplateJobAssigned     = "job_assigned"
	TemplateJobBlocked      = "job_blocked"
	TemplateRequestRejected = "request_rejected"
)

var builtinTemplates = map[string]string{
	TemplateWelcome: `<h3>Welcome to our platform!</h3>
<p>Dear {{.Name}},</p>
<p>Thank you for registering with us! We are excited to have you in our community.</p>
<p>Best regards,<br>The JobHub Team</p>`,

	TemplatePasswordChanged: `<h3>Password Update</h3>
<p>Dear {{.Name}},</p>
<p>Your password has been successfully updated. If you did not request this change, please contact us immediately.</p>
<p>Best regards,<br>The JobHub Team</p>`,

	TemplateAccountDeleted: `<h3>Account Deletion</h3>
<p>Dear {{.Name}},</p>
<p>Your account has been deleted. If this was not your request, please contact us immediately.</p>
<p>Best regards,<br>The JobHub Team</p>`,

	TemplateJobAssigned: `<h3>You have been assigned to a job</h3>
<p>Dear {{.Name}},</p>
<p>You have been assigned to the job <strong>{{.JobTitle}}</strong>. Good luck!</p>
<p>Best regards,<br>The JobHub Team</p>`,

	TemplateJobBlocked: `<h3>Job visibility changed</h3>
<p>Dear {{.Name}},</p>
<p>The job <strong>{{.JobTitle}}</strong> has been {{.Action}}.</p>
<p>Best regards,<br>The JobHub Team</p>`,

	TemplateRequestRejected: `<h3>Application update</h3>
<p>Dear {{.Name}},</p>
<p>Your application for the job <strong>{{.JobTitle}}</strong> was not accepted this time.</p>
<p>Best regards,<br>The JobHub Team</p>`,
}

// TemplateManager renders the built-in HTML templates.
type TemplateManager struct {
	templates map[string]*template.Template
}

// NewTemplateManager parses every built-in template up front so a broken
// template fails at startup, not at send time.
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		t, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		tm.templates[name] = t
	}
	return tm, nil
}

// Render executes the named template with the given data.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	t, ok := tm.templates[templateName]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", templateName)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", templateName, err)
	}
	return buf.String(), nil
}
