package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNotification(t *testing.T) {
	plain, html, err := RenderNotification(NotificationEmail{
		RecipientName: "Dana",
		Title:         "New application",
		Message:       "Chris applied to your project.",
		SiteName:      "Contractor Connect",
		SiteURL:       "https://example.com",
	})
	require.NoError(t, err)
	assert.Contains(t, plain, "Hi Dana")
	assert.Contains(t, plain, "Chris applied")
	assert.Contains(t, html, "<h2>New application</h2>")
	assert.Contains(t, html, `href="https://example.com"`)
}

func TestRenderNotificationEscapesHTML(t *testing.T) {
	_, html, err := RenderNotification(NotificationEmail{
		RecipientName: "Dana",
		Title:         "<script>alert(1)</script>",
		Message:       "ok",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderDigest(t *testing.T) {
	plain, html, err := RenderDigest(DigestEmail{
		RecipientName: "Dana",
		TotalUnread:   2,
		Items: []DigestItem{
			{Title: "New message", Message: "You have a new chat message."},
			{Title: "Milestone overdue", Message: "Demolition passed its due date."},
		},
		SiteName: "Contractor Connect",
		SiteURL:  "https://example.com",
	})
	require.NoError(t, err)
	assert.Contains(t, plain, "2 unread")
	assert.Contains(t, plain, "- New message:")
	assert.Contains(t, html, "<strong>Milestone overdue</strong>")
}
