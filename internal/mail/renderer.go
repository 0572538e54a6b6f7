package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jobpulse/jobpulse-api/internal/alerts"
)

// AlertData is the template input for one alert email.
type AlertData struct {
	User             alerts.UserProfile
	Job              alerts.JobPosting
	MatchedSkills    []string
	MatchedInterests []string
}

// RenderedMessage is a ready-to-send email body pair.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

// Renderer renders job alerts as HTML emails with a plain text fallback.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer with the default alert template.
func NewRenderer() *Renderer {
	t := template.Must(template.New("alert").Parse(alertHTMLTemplate))
	return &Renderer{tmpl: t}
}

// Render produces an HTML email with plain text alternative.
func (r *Renderer) Render(data AlertData) (*RenderedMessage, error) {
	subject := fmt.Sprintf("New job match: %s", data.Job.Title)
	if data.Job.Company != "" {
		subject = fmt.Sprintf("New job match: %s at %s", data.Job.Title, data.Job.Company)
	}

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    renderPlainText(data),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable version for clients without HTML.
func renderPlainText(data AlertData) string {
	var sb strings.Builder

	name := data.User.Name
	if name == "" {
		name = "there"
	}
	sb.WriteString(fmt.Sprintf("Hi %s,\n\n", name))
	sb.WriteString("A new posting matches your profile:\n\n")
	sb.WriteString(fmt.Sprintf("  %s\n", data.Job.Title))
	if data.Job.Company != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", data.Job.Company))
	}
	sb.WriteString("\n")

	if len(data.MatchedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Matching skills: %s\n", strings.Join(data.MatchedSkills, ", ")))
	}
	if len(data.MatchedInterests) > 0 {
		sb.WriteString(fmt.Sprintf("Matching interests: %s\n", strings.Join(data.MatchedInterests, ", ")))
	}

	sb.WriteString("\nYou receive these alerts because job notifications are enabled on your JobPulse profile.\n")
	return sb.String()
}
