package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/config"
)

func TestSendFailsWithoutHost(t *testing.T) {
	m := New(config.SMTPConfig{From: "noreply@example.com"})
	err := m.Send("someone@example.com", "subject", "body", "<p>body</p>")
	assert.Error(t, err)
}

func TestDiagnoseFindsMissingConfig(t *testing.T) {
	m := New(config.SMTPConfig{})
	findings := m.Diagnose()
	require.NotEmpty(t, findings)

	joined := ""
	for _, f := range findings {
		joined += f + "\n"
	}
	assert.Contains(t, joined, "SMTP_HOST is empty")
	assert.Contains(t, joined, "SMTP_FROM is empty")
}

func TestDiagnoseFlagsPort25(t *testing.T) {
	m := New(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     25,
		Username: "noreply@example.com",
		Password: "hunter2hunter2xx",
		From:     "noreply@example.com",
	})
	findings := m.Diagnose()
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "port 25")
}

func TestDiagnoseCleanConfig(t *testing.T) {
	m := New(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "noreply@example.com",
		Password: "hunter2hunter2xx",
		From:     "noreply@example.com",
	})
	findings := m.Diagnose()
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "configuration looks sane")
}

func TestDiagnoseGmailAppPassword(t *testing.T) {
	m := New(config.SMTPConfig{
		Host:     "smtp.gmail.com",
		Port:     587,
		Username: "me@gmail.com",
		Password: "short",
		From:     "me@gmail.com",
	})
	findings := m.Diagnose()
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0], "app password")
}
