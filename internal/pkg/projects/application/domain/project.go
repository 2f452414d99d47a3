package projects

import (
	"errors"
	"strings"
	"time"
)

// Project lifecycle states.
const (
	StatusDraft      = "draft"
	StatusPublished  = "published"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Application states.
const (
	ApplicationPending   = "pending"
	ApplicationAccepted  = "accepted"
	ApplicationRejected  = "rejected"
	ApplicationWithdrawn = "withdrawn"
)

// Milestone states.
const (
	MilestonePending    = "pending"
	MilestoneInProgress = "in_progress"
	MilestoneCompleted  = "completed"
)

var (
	ErrNotFound               = errors.New("projects: not found")
	ErrDuplicate              = errors.New("projects: already exists")
	ErrForbidden              = errors.New("projects: caller does not own this resource")
	ErrInvalidTransition      = errors.New("projects: status transition not allowed")
	ErrNotOpenForApplications = errors.New("projects: project is not accepting applications")
	ErrMissingTitle           = errors.New("projects: title is required")
	ErrMissingDescription     = errors.New("projects: description is required")
	ErrInvalidBudget          = errors.New("projects: budget_min must not exceed budget_max")
	ErrInvalidPriority        = errors.New("projects: invalid priority")
	ErrInvalidProgress        = errors.New("projects: progress must be between 0 and 100")
	ErrApplicationClosed      = errors.New("projects: application already decided")
)

var validPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "urgent": true,
}

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p string) bool { return validPriorities[p] }

// transitions holds the allowed status machine. Published projects move to
// in_progress when an application is accepted, never directly by the client.
var transitions = map[string][]string{
	StatusDraft:      {StatusPublished, StatusCancelled},
	StatusPublished:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a project may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Project is a client-posted job that contractors apply to.
type Project struct {
	ID                 string     `db:"id"`
	ClientID           string     `db:"client_id"`
	ContractorID       *string    `db:"contractor_id"`
	Title              string     `db:"title"`
	Description        string     `db:"description"`
	CategoryID         *string    `db:"category_id"`
	BudgetMin          float64    `db:"budget_min"`
	BudgetMax          float64    `db:"budget_max"`
	Status             string     `db:"status"`
	Priority           string     `db:"priority"`
	Address            string     `db:"address"`
	City               string     `db:"city"`
	State              string     `db:"state"`
	PostalCode         string     `db:"postal_code"`
	Latitude           *float64   `db:"latitude"`
	Longitude          *float64   `db:"longitude"`
	StartDate          *time.Time `db:"start_date"`
	EndDate            *time.Time `db:"end_date"`
	Deadline           *time.Time `db:"deadline"`
	ProgressPercentage int        `db:"progress_percentage"`
	IsFeatured         bool       `db:"is_featured"`
	ViewsCount         int        `db:"views_count"`
	ApplicationsCount  int        `db:"applications_count"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// NewProject validates a client posting. Projects always start as drafts.
func NewProject(p Project) (*Project, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(p.Description) == "" {
		return nil, ErrMissingDescription
	}
	if p.BudgetMin < 0 || p.BudgetMax < 0 || p.BudgetMin > p.BudgetMax {
		return nil, ErrInvalidBudget
	}
	if p.Priority == "" {
		p.Priority = "medium"
	}
	if !validPriorities[p.Priority] {
		return nil, ErrInvalidPriority
	}
	p.Status = StatusDraft
	p.ProgressPercentage = 0
	return &p, nil
}

// IsOpen reports whether contractors may still apply.
func (p Project) IsOpen() bool { return p.Status == StatusPublished }

// Application is a contractor's bid on a published project.
type Application struct {
	ID               string    `db:"id"`
	ProjectID        string    `db:"project_id"`
	ContractorID     string    `db:"contractor_id"`
	CoverLetter      string    `db:"cover_letter"`
	ProposedBudget   float64   `db:"proposed_budget"`
	ProposedTimeline int       `db:"proposed_timeline"`
	Status           string    `db:"status"`
	AppliedAt        time.Time `db:"applied_at"`
	UpdatedAt        time.Time `db:"updated_at"`

	// Denormalized for listings.
	ContractorName string `db:"-"`
	BusinessName   string `db:"-"`
}

// NewApplication validates a bid.
func NewApplication(a Application) (*Application, error) {
	if strings.TrimSpace(a.CoverLetter) == "" {
		return nil, errors.New("projects: cover letter is required")
	}
	if a.ProposedBudget <= 0 {
		return nil, errors.New("projects: proposed budget must be positive")
	}
	if a.ProposedTimeline <= 0 {
		return nil, errors.New("projects: proposed timeline must be positive days")
	}
	a.Status = ApplicationPending
	return &a, nil
}

// Milestone is a dated checkpoint with a payment share.
type Milestone struct {
	ID                string     `db:"id"`
	ProjectID         string     `db:"project_id"`
	Title             string     `db:"title"`
	Description       string     `db:"description"`
	DueDate           time.Time  `db:"due_date"`
	CompletionDate    *time.Time `db:"completion_date"`
	Status            string     `db:"status"`
	PaymentPercentage float64    `db:"payment_percentage"`
	SortOrder         int        `db:"sort_order"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

// NewMilestone validates a checkpoint.
func NewMilestone(m Milestone) (*Milestone, error) {
	if strings.TrimSpace(m.Title) == "" {
		return nil, ErrMissingTitle
	}
	if m.DueDate.IsZero() {
		return nil, errors.New("projects: milestone due date is required")
	}
	if m.PaymentPercentage < 0 || m.PaymentPercentage > 100 {
		return nil, errors.New("projects: payment percentage must be between 0 and 100")
	}
	if m.SortOrder < 1 {
		m.SortOrder = 1
	}
	m.Status = MilestonePending
	return &m, nil
}

// IsOverdue reports whether an unfinished milestone is past its due date.
func (m Milestone) IsOverdue(now time.Time) bool {
	return m.Status != MilestoneCompleted && now.After(m.DueDate)
}

// Update is a progress note posted by the client or the assigned contractor.
type Update struct {
	ID                 string    `db:"id"`
	ProjectID          string    `db:"project_id"`
	AuthorID           string    `db:"author_id"`
	Title              string    `db:"title"`
	Content            string    `db:"content"`
	ProgressPercentage *int      `db:"progress_percentage"`
	MilestoneID        *string   `db:"milestone_id"`
	CreatedAt          time.Time `db:"created_at"`

	AuthorName string `db:"-"`
}

// NewUpdate validates a progress note.
func NewUpdate(u Update) (*Update, error) {
	if strings.TrimSpace(u.Title) == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(u.Content) == "" {
		return nil, errors.New("projects: update content is required")
	}
	if u.ProgressPercentage != nil && (*u.ProgressPercentage < 0 || *u.ProgressPercentage > 100) {
		return nil, ErrInvalidProgress
	}
	return &u, nil
}

// SearchFilter narrows project listings.
type SearchFilter struct {
	Status     string
	CategoryID string
	City       string
	ClientID   string
	Priority   string
	Query      string
	Limit      int
	Offset     int
}
