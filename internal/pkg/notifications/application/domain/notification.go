package notifications

import (
	"errors"
	"strings"
	"time"
)

// Notification kinds. The kind drives preference gating for both email and
// in-app delivery.
const (
	KindProjectUpdate     = "project_update"
	KindNewApplication    = "new_application"
	KindApplicationStatus = "application_status"
	KindNewMessage        = "new_message"
	KindNewReview         = "new_review"
	KindReviewResponse    = "review_response"
	KindModeration        = "moderation"
	KindSystem            = "system"
)

var (
	ErrNotFound     = errors.New("notifications: not found")
	ErrMissingTitle = errors.New("notifications: title and message are required")
	ErrMissingUser  = errors.New("notifications: user is required")
)

// Notification is one in-app inbox entry.
type Notification struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Kind        string         `db:"kind"`
	Title       string         `db:"title"`
	Message     string         `db:"message"`
	RelatedKind string         `db:"related_kind"`
	RelatedID   *string        `db:"related_id"`
	ExtraData   map[string]any `db:"extra_data"`
	IsRead      bool           `db:"is_read"`
	ReadAt      *time.Time     `db:"read_at"`
	CreatedAt   time.Time      `db:"created_at"`
}

// NewNotification validates an outgoing notification.
func NewNotification(n Notification) (*Notification, error) {
	if n.UserID == "" {
		return nil, ErrMissingUser
	}
	if strings.TrimSpace(n.Title) == "" || strings.TrimSpace(n.Message) == "" {
		return nil, ErrMissingTitle
	}
	if n.Kind == "" {
		n.Kind = KindSystem
	}
	if n.ExtraData == nil {
		n.ExtraData = map[string]any{}
	}
	return &n, nil
}

// Preferences control which kinds reach the user on each channel.
type Preferences struct {
	UserID              string `db:"user_id" json:"-"`
	EmailProjectUpdates bool   `db:"email_project_updates" json:"email_project_updates"`
	EmailNewMessages    bool   `db:"email_new_messages" json:"email_new_messages"`
	EmailApplications   bool   `db:"email_applications" json:"email_applications"`
	EmailReviews        bool   `db:"email_reviews" json:"email_reviews"`
	EmailMarketing      bool   `db:"email_marketing" json:"email_marketing"`
	PushProjectUpdates  bool   `db:"push_project_updates" json:"push_project_updates"`
	PushNewMessages     bool   `db:"push_new_messages" json:"push_new_messages"`
	PushApplications    bool   `db:"push_applications" json:"push_applications"`
	PushReviews         bool   `db:"push_reviews" json:"push_reviews"`
	InAppProjectUpdates bool   `db:"inapp_project_updates" json:"inapp_project_updates"`
	InAppNewMessages    bool   `db:"inapp_new_messages" json:"inapp_new_messages"`
	InAppApplications   bool   `db:"inapp_applications" json:"inapp_applications"`
	InAppReviews        bool   `db:"inapp_reviews" json:"inapp_reviews"`
}

// DefaultPreferences matches the column defaults: everything on except
// marketing email.
func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:              userID,
		EmailProjectUpdates: true,
		EmailNewMessages:    true,
		EmailApplications:   true,
		EmailReviews:        true,
		EmailMarketing:      false,
		PushProjectUpdates:  true,
		PushNewMessages:     true,
		PushApplications:    true,
		PushReviews:         true,
		InAppProjectUpdates: true,
		InAppNewMessages:    true,
		InAppApplications:   true,
		InAppReviews:        true,
	}
}

// AllowsEmail reports whether the kind may be emailed to this user.
// Unknown and system kinds are always delivered.
func (p Preferences) AllowsEmail(kind string) bool {
	switch kind {
	case KindProjectUpdate:
		return p.EmailProjectUpdates
	case KindNewMessage:
		return p.EmailNewMessages
	case KindNewApplication, KindApplicationStatus:
		return p.EmailApplications
	case KindNewReview, KindReviewResponse:
		return p.EmailReviews
	default:
		return true
	}
}

// AllowsInApp reports whether the kind may appear in this user's inbox.
func (p Preferences) AllowsInApp(kind string) bool {
	switch kind {
	case KindProjectUpdate:
		return p.InAppProjectUpdates
	case KindNewMessage:
		return p.InAppNewMessages
	case KindNewApplication, KindApplicationStatus:
		return p.InAppApplications
	case KindNewReview, KindReviewResponse:
		return p.InAppReviews
	default:
		return true
	}
}

// Recipient is the minimal addressing info the email tasks need.
type Recipient struct {
	UserID string
	Email  string
	Name   string
}
