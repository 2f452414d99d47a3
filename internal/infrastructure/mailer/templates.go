package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// NotificationEmail is the context rendered into the notification templates.
type NotificationEmail struct {
	RecipientName string
	Title         string
	Message       string
	SiteName      string
	SiteURL       string
}

// DigestEmail is the context for the daily digest.
type DigestEmail struct {
	RecipientName string
	Items         []DigestItem
	TotalUnread   int
	SiteName      string
	SiteURL       string
}

type DigestItem struct {
	Title   string
	Message string
}

var notificationHTML = template.Must(template.New("notification").Parse(`<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>{{.Title}}</h2>
  <p>Hi {{.RecipientName}},</p>
  <p>{{.Message}}</p>
  <p><a href="{{.SiteURL}}">Open {{.SiteName}}</a></p>
</body>
</html>`))

var digestHTML = template.Must(template.New("digest").Parse(`<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Your daily digest</h2>
  <p>Hi {{.RecipientName}}, you have {{.TotalUnread}} unread notifications.</p>
  <ul>
  {{range .Items}}<li><strong>{{.Title}}</strong>: {{.Message}}</li>
  {{end}}</ul>
  <p><a href="{{.SiteURL}}">Open {{.SiteName}}</a></p>
</body>
</html>`))

// RenderNotification produces the plain and HTML bodies for a single notification email.
func RenderNotification(data NotificationEmail) (plain string, html string, err error) {
	var buf bytes.Buffer
	if err := notificationHTML.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("mailer: render notification: %w", err)
	}
	plain = fmt.Sprintf("Hi %s,\n\n%s\n\n%s\n\nOpen %s: %s\n",
		data.RecipientName, data.Title, data.Message, data.SiteName, data.SiteURL)
	return plain, buf.String(), nil
}

// RenderDigest produces the plain and HTML bodies for the daily digest email.
func RenderDigest(data DigestEmail) (plain string, html string, err error) {
	var buf bytes.Buffer
	if err := digestHTML.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("mailer: render digest: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s, you have %d unread notifications.\n\n", data.RecipientName, data.TotalUnread)
	for _, item := range data.Items {
		fmt.Fprintf(&sb, "- %s: %s\n", item.Title, item.Message)
	}
	fmt.Fprintf(&sb, "\nOpen %s: %s\n", data.SiteName, data.SiteURL)
	return sb.String(), buf.String(), nil
}
