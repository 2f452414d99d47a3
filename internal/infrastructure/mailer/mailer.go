package mailer

import (
	"errors"
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/config"
)

// Mailer sends transactional email over SMTP. It is intentionally synchronous;
// callers run it from background tasks, never from request handlers.
type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a single message with both a plain-text and an HTML body.
func (m *Mailer) Send(to, subject, plainBody, htmlBody string) error {
	if err := m.checkConfig(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("[%s] %s", m.cfg.SiteName, subject))
	msg.SetBody("text/plain", plainBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}

func (m *Mailer) checkConfig() error {
	if m.cfg.Host == "" {
		return errors.New("mailer: SMTP_HOST is not configured")
	}
	if m.cfg.From == "" {
		return errors.New("mailer: SMTP_FROM is not configured")
	}
	return nil
}

// Diagnose inspects the SMTP configuration for the misconfigurations the
// deployment guide warns about and returns human-readable findings. It does
// not contact the server.
func (m *Mailer) Diagnose() []string {
	var findings []string

	if m.cfg.Host == "" {
		findings = append(findings, "SMTP_HOST is empty: email delivery is disabled")
	}
	if m.cfg.Username == "" || m.cfg.Password == "" {
		findings = append(findings, "SMTP credentials are incomplete: most providers reject unauthenticated senders")
	}
	if m.cfg.From == "" {
		findings = append(findings, "SMTP_FROM is empty: messages will be rejected or spam-filtered")
	} else if m.cfg.Username != "" && !strings.EqualFold(m.cfg.From, m.cfg.Username) && !strings.Contains(m.cfg.From, "@") {
		findings = append(findings, "SMTP_FROM is not an email address")
	}
	switch m.cfg.Port {
	case 25:
		findings = append(findings, "port 25 is commonly blocked by cloud providers; prefer 587 (STARTTLS) or 465 (TLS)")
	case 465, 587:
		// expected
	default:
		if m.cfg.Port != 0 {
			findings = append(findings, fmt.Sprintf("unusual SMTP port %d; 587 or 465 expected", m.cfg.Port))
		}
	}
	if strings.Contains(m.cfg.Host, "gmail") && m.cfg.Password != "" && len(m.cfg.Password) != 16 {
		findings = append(findings, "gmail SMTP requires a 16-character app password, not the account password")
	}

	if len(findings) == 0 {
		findings = append(findings, "configuration looks sane; if mail still vanishes, check the provider's spam policies")
	}
	return findings
}
