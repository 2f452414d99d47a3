package moderation

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// RiskLevel buckets analyzer output for queue triage.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Content kinds the moderation pipeline understands.
const (
	ContentReview      = "review"
	ContentMessage     = "message"
	ContentProject     = "project"
	ContentProfile     = "profile"
	ContentReviewReply = "review_response"
	ContentApplication = "application"
)

// Report, queue and action status/priority values.
const (
	ReportPending   = "pending"
	ReportReviewing = "reviewing"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"

	QueuePending    = "pending"
	QueueInProgress = "in_progress"
	QueueCompleted  = "completed"

	ActionFlag    = "flag"
	ActionApprove = "approve"
	ActionHide    = "hide"
	ActionWarn    = "warn"

	RuleFlag        = "flag"
	RuleAutoReject  = "auto_reject"
	RuleAutoApprove = "auto_approve"
	RuleQuarantine  = "quarantine"
)

var (
	ErrNotFound           = errors.New("moderation: not found")
	ErrUnknownContentKind = errors.New("moderation: unknown content kind")
	ErrMissingDescription = errors.New("moderation: report description is required")
	ErrInvalidReportType  = errors.New("moderation: invalid report type")
	ErrAlreadyResolved    = errors.New("moderation: report already resolved")
)

// ClassifyRisk maps the worst analyzer score to a risk level.
func ClassifyRisk(s Scores) RiskLevel {
	switch m := s.Max(); {
	case m >= 0.8:
		return RiskCritical
	case m >= 0.6:
		return RiskHigh
	case m >= 0.3:
		return RiskMedium
	default:
		return RiskLow
	}
}

// QueuePriority maps risk to triage priority.
func QueuePriority(r RiskLevel) string {
	switch r {
	case RiskCritical:
		return "urgent"
	case RiskHigh:
		return "high"
	default:
		return "normal"
	}
}

// ContentFilter is the stored analyzer verdict for one piece of content.
type ContentFilter struct {
	ID             string    `db:"id"`
	ContentKind    string    `db:"content_kind"`
	ContentID      string    `db:"content_id"`
	Scores         Scores    `db:"-"`
	RiskLevel      RiskLevel `db:"risk_level"`
	RequiresReview bool      `db:"requires_review"`
	IsApproved     bool      `db:"is_approved"`
	ProcessedAt    time.Time `db:"processed_at"`
}

// NewContentFilter derives the verdict from analyzer scores. High risk and
// above goes to human review; low and medium stay published in the meantime.
func NewContentFilter(kind, id string, s Scores) ContentFilter {
	risk := ClassifyRisk(s)
	return ContentFilter{
		ContentKind:    kind,
		ContentID:      id,
		Scores:         s,
		RiskLevel:      risk,
		RequiresReview: risk == RiskHigh || risk == RiskCritical,
		IsApproved:     risk == RiskLow || risk == RiskMedium,
	}
}

// Rule is a staff-managed keyword rule layered on top of the analyzer.
type Rule struct {
	ID                  string    `db:"id"`
	Name                string    `db:"name"`
	Description         string    `db:"description"`
	RuleType            string    `db:"rule_type"`
	Keywords            []string  `db:"keywords"`
	Patterns            []string  `db:"patterns"`
	ConfidenceThreshold float64   `db:"confidence_threshold"`
	Action              string    `db:"action"`
	IsActive            bool      `db:"is_active"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// Matches reports whether any keyword or regex pattern hits the text.
// Patterns come from the staff API, so invalid expressions are skipped
// instead of failing the whole rule.
func (r Rule) Matches(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	for _, p := range r.Patterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Report is a user complaint about a piece of content.
type Report struct {
	ID              string     `db:"id"`
	ReporterID      string     `db:"reporter_id"`
	ContentKind     string     `db:"content_kind"`
	ContentID       string     `db:"content_id"`
	ReportType      string     `db:"report_type"`
	Description     string     `db:"description"`
	Status          string     `db:"status"`
	ReviewedBy      *string    `db:"reviewed_by"`
	ResolutionNotes string     `db:"resolution_notes"`
	ResolvedAt      *time.Time `db:"resolved_at"`
	CreatedAt       time.Time  `db:"created_at"`
}

var validReportTypes = map[string]bool{
	"spam": true, "harassment": true, "inappropriate": true,
	"scam": true, "fake": true, "other": true,
}

// NewReport validates a user-submitted complaint.
func NewReport(r Report) (*Report, error) {
	if !validReportTypes[r.ReportType] {
		return nil, ErrInvalidReportType
	}
	if strings.TrimSpace(r.Description) == "" {
		return nil, ErrMissingDescription
	}
	if !knownContentKind(r.ContentKind) {
		return nil, ErrUnknownContentKind
	}
	r.Status = ReportPending
	return &r, nil
}

func knownContentKind(kind string) bool {
	switch kind {
	case ContentReview, ContentMessage, ContentProject, ContentProfile, ContentReviewReply, ContentApplication:
		return true
	}
	return false
}

// QueueItem is one entry awaiting human review.
type QueueItem struct {
	ID          string     `db:"id"`
	ContentKind string     `db:"content_kind"`
	ContentID   string     `db:"content_id"`
	Priority    string     `db:"priority"`
	Status      string     `db:"status"`
	AssignedTo  *string    `db:"assigned_to"`
	AssignedAt  *time.Time `db:"assigned_at"`
	FilterID    *string    `db:"filter_id"`
	Notes       string     `db:"notes"`
	CreatedAt   time.Time  `db:"created_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

// Action is the audit record of a moderation decision.
type Action struct {
	ID          string         `db:"id"`
	ContentKind string         `db:"content_kind"`
	ContentID   string         `db:"content_id"`
	Action      string         `db:"action"`
	Reason      string         `db:"reason"`
	ModeratorID *string        `db:"moderator_id"`
	IsAutomated bool           `db:"is_automated"`
	RuleID      *string        `db:"rule_id"`
	ReportID    *string        `db:"report_id"`
	Metadata    map[string]any `db:"metadata"`
	CreatedAt   time.Time      `db:"created_at"`
}
