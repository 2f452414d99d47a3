package projects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, CanTransition(StatusDraft, StatusPublished))
	assert.True(t, CanTransition(StatusDraft, StatusCancelled))
	assert.True(t, CanTransition(StatusPublished, StatusInProgress))
	assert.True(t, CanTransition(StatusPublished, StatusCancelled))
	assert.True(t, CanTransition(StatusInProgress, StatusCompleted))
	assert.True(t, CanTransition(StatusInProgress, StatusCancelled))

	assert.False(t, CanTransition(StatusDraft, StatusInProgress))
	assert.False(t, CanTransition(StatusDraft, StatusCompleted))
	assert.False(t, CanTransition(StatusPublished, StatusDraft))
	assert.False(t, CanTransition(StatusCompleted, StatusInProgress))
	assert.False(t, CanTransition(StatusCancelled, StatusPublished))
}

func TestNewProjectDefaults(t *testing.T) {
	p, err := NewProject(Project{
		ClientID:    "u1",
		Title:       "Kitchen remodel",
		Description: "Full gut renovation of a 12x14 kitchen.",
		BudgetMin:   5000,
		BudgetMax:   12000,
		Status:      StatusPublished, // callers cannot pick the initial status
	})
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, "medium", p.Priority)
	assert.Zero(t, p.ProgressPercentage)
}

func TestNewProjectValidation(t *testing.T) {
	_, err := NewProject(Project{Description: "d", BudgetMax: 1})
	assert.ErrorIs(t, err, ErrMissingTitle)

	_, err = NewProject(Project{Title: "t", BudgetMax: 1})
	assert.ErrorIs(t, err, ErrMissingDescription)

	_, err = NewProject(Project{Title: "t", Description: "d", BudgetMin: 100, BudgetMax: 50})
	assert.ErrorIs(t, err, ErrInvalidBudget)

	_, err = NewProject(Project{Title: "t", Description: "d", BudgetMax: 1, Priority: "whenever"})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestNewApplicationDefaults(t *testing.T) {
	a, err := NewApplication(Application{
		ProjectID:        "p1",
		ContractorID:     "c1",
		CoverLetter:      "I have done three similar remodels this year.",
		ProposedBudget:   8000,
		ProposedTimeline: 30,
		Status:           ApplicationAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, ApplicationPending, a.Status)

	_, err = NewApplication(Application{ProposedBudget: 1, ProposedTimeline: 1})
	assert.Error(t, err)

	_, err = NewApplication(Application{CoverLetter: "x", ProposedTimeline: 1})
	assert.Error(t, err)
}

func TestNewMilestone(t *testing.T) {
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	m, err := NewMilestone(Milestone{ProjectID: "p1", Title: "Demolition", DueDate: due, PaymentPercentage: 25})
	require.NoError(t, err)
	assert.Equal(t, MilestonePending, m.Status)
	assert.Equal(t, 1, m.SortOrder)

	_, err = NewMilestone(Milestone{ProjectID: "p1", Title: "Demolition", DueDate: due, PaymentPercentage: 120})
	assert.Error(t, err)
}

func TestMilestoneIsOverdue(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	m := Milestone{DueDate: due, Status: MilestonePending}

	assert.False(t, m.IsOverdue(due.Add(-24*time.Hour)))
	assert.True(t, m.IsOverdue(due.Add(24*time.Hour)))

	m.Status = MilestoneCompleted
	assert.False(t, m.IsOverdue(due.Add(24*time.Hour)))
}

func TestNewUpdateProgressBounds(t *testing.T) {
	bad := 101
	_, err := NewUpdate(Update{Title: "t", Content: "c", ProgressPercentage: &bad})
	assert.ErrorIs(t, err, ErrInvalidProgress)

	ok := 60
	u, err := NewUpdate(Update{Title: "t", Content: "c", ProgressPercentage: &ok})
	require.NoError(t, err)
	assert.Equal(t, 60, *u.ProgressPercentage)
}
