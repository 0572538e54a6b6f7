// Package mail delivers job-alert emails over SMTP.
package mail

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gomail "gopkg.in/mail.v2"

	"github.com/jobpulse/jobpulse-api/internal/alerts"
)

// Config holds SMTP configuration for sending emails.
type Config struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	Enabled    bool
}

// DeliveryReceipt records one accepted send.
type DeliveryReceipt struct {
	MessageID string
	To        string
	Subject   string
	SentAt    time.Time
}

// Sender delivers rendered job alerts via SMTP. It implements
// alerts.EmailSender; a transport or auth failure surfaces as an error and
// the alert engine treats it as non-fatal to the batch.
type Sender struct {
	cfg      Config
	renderer *Renderer
	logger   *slog.Logger
}

// NewSender creates a sender with the given SMTP configuration.
func NewSender(cfg Config, logger *slog.Logger) *Sender {
	return &Sender{
		cfg:      cfg,
		renderer: NewRenderer(),
		logger:   logger,
	}
}

// SendJobAlert renders and delivers one alert email. With Enabled=false the
// send is skipped and logged, which keeps development runs side-effect free.
func (s *Sender) SendJobAlert(ctx context.Context, user alerts.UserProfile, job alerts.JobPosting, matchedSkills, matchedInterests []string) error {
	msg, err := s.renderer.Render(AlertData{
		User:             user,
		Job:              job,
		MatchedSkills:    matchedSkills,
		MatchedInterests: matchedInterests,
	})
	if err != nil {
		return err
	}

	if !s.cfg.Enabled {
		s.logger.Info("email disabled, skipping send",
			"to", user.Email, "subject", msg.Subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	dialer := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		return err
	}

	receipt := DeliveryReceipt{
		MessageID: uuid.NewString(),
		To:        user.Email,
		Subject:   msg.Subject,
		SentAt:    time.Now(),
	}
	s.logger.Info("job alert sent",
		"message_id", receipt.MessageID,
		"to", receipt.To,
		"job_id", job.ID)
	return nil
}
