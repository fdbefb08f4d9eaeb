package notify

import (
	"bytes"
	"fmt"
	"text/template"
)

// Template names used by the lifecycle engine and handlers.
const (
	TemplateEmployerApproved    = "employerApproved"
	TemplateEmployerRejected    = "employerRejected"
	TemplateInterviewScheduled  = "interviewScheduled"
	TemplateApplicationReceived = "applicationReceived"
)

type message struct {
	subject string
	body    *template.Template
}

var templates = map[string]message{
	TemplateEmployerApproved: {
		subject: "Your employer account has been approved",
		body: template.Must(template.New(TemplateEmployerApproved).Parse(
			"Hello {{.companyName}},\n\n" +
				"Your employer account has been approved. You can now sign in and post jobs.\n")),
	},
	TemplateEmployerRejected: {
		subject: "Your employer account application",
		body: template.Must(template.New(TemplateEmployerRejected).Parse(
			"Hello {{.companyName}},\n\n" +
				"Unfortunately your employer account was not approved." +
				"{{if .reason}}\nReason: {{.reason}}{{end}}\n")),
	},
	TemplateInterviewScheduled: {
		subject: "Interview invitation",
		body: template.Must(template.New(TemplateInterviewScheduled).Parse(
			"Hello {{.name}},\n\n" +
				"You are invited to an interview for {{.jobTitle}}.\n" +
				"When: {{.date}}\n" +
				"Where: {{.location}}\n" +
				"{{if .notes}}Notes: {{.notes}}\n{{end}}")),
	},
	TemplateApplicationReceived: {
		subject: "Application received",
		body: template.Must(template.New(TemplateApplicationReceived).Parse(
			"Hello {{.name}},\n\n" +
				"We received your application for {{.jobTitle}}. " +
				"You can track its status from your account.\n")),
	},
}

// Render produces the subject and body for a named template. Unknown names
// are an error so call sites cannot silently send empty mail.
func Render(name string, data map[string]any) (subject, body string, err error) {
	m, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown notification template %q", name)
	}
	var buf bytes.Buffer
	if err := m.body.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render template %s: %w", name, err)
	}
	return m.subject, buf.String(), nil
}
