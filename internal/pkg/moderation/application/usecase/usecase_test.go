package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
)

// fakeModerationRepo is an in-memory ModerationRepository for use case tests.
type fakeModerationRepo struct {
	mu      sync.Mutex
	content map[string]string // kind|id -> text
	rules   []moderation.Rule
	filters []moderation.ContentFilter
	queued  []moderation.QueueItem
	actions []moderation.Action
	hidden  []string
	seq     int
}

func newFakeModerationRepo() *fakeModerationRepo {
	return &fakeModerationRepo{content: map[string]string{}}
}

func (f *fakeModerationRepo) FetchContentText(_ context.Context, kind, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if text, ok := f.content[kind+"|"+id]; ok {
		return text, nil
	}
	return "", moderation.ErrNotFound
}

func (f *fakeModerationRepo) HideContent(_ context.Context, kind, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hidden = append(f.hidden, kind+"|"+id)
	return nil
}

func (f *fakeModerationRepo) SaveFilter(_ context.Context, filter moderation.ContentFilter) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	filter.ID = "filter-" + string(rune('0'+f.seq))
	f.filters = append(f.filters, filter)
	return filter.ID, nil
}

func (f *fakeModerationRepo) GetFilter(context.Context, string, string) (*moderation.ContentFilter, error) {
	return nil, moderation.ErrNotFound
}

func (f *fakeModerationRepo) ListActiveRules(context.Context) ([]moderation.Rule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rules, nil
}

func (f *fakeModerationRepo) CreateRule(context.Context, moderation.Rule) (string, error) {
	return "rule-1", nil
}

func (f *fakeModerationRepo) SetRuleActive(context.Context, string, bool) error { return nil }

func (f *fakeModerationRepo) CreateReport(context.Context, moderation.Report) (string, error) {
	return "report-1", nil
}

func (f *fakeModerationRepo) ListReports(context.Context, string, int, int) ([]moderation.Report, int, error) {
	return nil, 0, nil
}

func (f *fakeModerationRepo) ResolveReport(context.Context, string, string, string, string) error {
	return nil
}

func (f *fakeModerationRepo) EnqueueItem(_ context.Context, item moderation.QueueItem) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, item)
	return "queue-1", nil
}

func (f *fakeModerationRepo) GetQueueItem(context.Context, string) (*moderation.QueueItem, error) {
	return nil, moderation.ErrNotFound
}

func (f *fakeModerationRepo) ListQueue(context.Context, string, int, int) ([]moderation.QueueItem, int, error) {
	return nil, 0, nil
}

func (f *fakeModerationRepo) AssignQueueItem(context.Context, string, string) error   { return nil }
func (f *fakeModerationRepo) CompleteQueueItem(context.Context, string, string) error { return nil }

func (f *fakeModerationRepo) RecordAction(_ context.Context, a moderation.Action) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, a)
	return "action-1", nil
}

func (f *fakeModerationRepo) ListActions(context.Context, string, string) ([]moderation.Action, error) {
	return nil, nil
}

func TestScanCleanContentApprovedWithoutQueue(t *testing.T) {
	repo := newFakeModerationRepo()
	repo.content["review|r1"] = "Excellent work, would recommend."
	uc := NewScanContentUseCase(repo)

	verdict, err := uc.Execute(context.Background(), "review", "r1")
	require.NoError(t, err)

	assert.True(t, verdict.IsApproved)
	assert.False(t, verdict.RequiresReview)
	assert.Empty(t, repo.queued)
	assert.Empty(t, repo.hidden)
}

func TestScanHighRiskQueuesAndHides(t *testing.T) {
	repo := newFakeModerationRepo()
	repo.content["review|r1"] = "you idiot, you moron"
	uc := NewScanContentUseCase(repo)

	verdict, err := uc.Execute(context.Background(), "review", "r1")
	require.NoError(t, err)

	assert.True(t, verdict.RequiresReview)
	assert.False(t, verdict.IsApproved)
	require.Len(t, repo.queued, 1)
	assert.Equal(t, []string{"review|r1"}, repo.hidden)
}

func TestScanRuleAutoRejectHidesWithoutQueue(t *testing.T) {
	repo := newFakeModerationRepo()
	repo.content["message|m1"] = "wire the deposit via western union"
	repo.rules = []moderation.Rule{{
		ID:                  "rule-wu",
		Name:                "wire transfer scam",
		RuleType:            "scam",
		Keywords:            []string{"western union"},
		ConfidenceThreshold: 0.5,
		Action:              moderation.RuleAutoReject,
		IsActive:            true,
	}}
	uc := NewScanContentUseCase(repo)

	verdict, err := uc.Execute(context.Background(), "message", "m1")
	require.NoError(t, err)

	assert.False(t, verdict.IsApproved)
	assert.False(t, verdict.RequiresReview)
	assert.Empty(t, repo.queued)
	assert.Equal(t, []string{"message|m1"}, repo.hidden)

	require.Len(t, repo.actions, 1)
	assert.Equal(t, moderation.ActionHide, repo.actions[0].Action)
	require.NotNil(t, repo.actions[0].RuleID)
	assert.Equal(t, "rule-wu", *repo.actions[0].RuleID)
}

func TestScanRuleQuarantineQueuesAndHides(t *testing.T) {
	repo := newFakeModerationRepo()
	repo.content["message|m1"] = "contact me off the platform"
	repo.rules = []moderation.Rule{{
		ID:                  "rule-op",
		Name:                "off-platform contact",
		RuleType:            "spam",
		Patterns:            []string{`off the platform`},
		ConfidenceThreshold: 0.4,
		Action:              moderation.RuleQuarantine,
		IsActive:            true,
	}}
	uc := NewScanContentUseCase(repo)

	verdict, err := uc.Execute(context.Background(), "message", "m1")
	require.NoError(t, err)

	assert.True(t, verdict.RequiresReview)
	assert.False(t, verdict.IsApproved)
	require.Len(t, repo.queued, 1)
	assert.Equal(t, []string{"message|m1"}, repo.hidden)
}

func TestScanRuleAutoApproveOverridesScores(t *testing.T) {
	repo := newFakeModerationRepo()
	repo.content["review|r1"] = "you idiot, you moron"
	repo.rules = []moderation.Rule{{
		ID:       "rule-ok",
		Name:     "trusted phrasing",
		RuleType: "toxicity",
		Keywords: []string{"idiot"},
		Action:   moderation.RuleAutoApprove,
		IsActive: true,
	}}
	uc := NewScanContentUseCase(repo)

	verdict, err := uc.Execute(context.Background(), "review", "r1")
	require.NoError(t, err)

	assert.True(t, verdict.IsApproved)
	assert.False(t, verdict.RequiresReview)
	assert.Empty(t, repo.queued)
	assert.Empty(t, repo.hidden)
}

func TestScanMissingContentIsTerminal(t *testing.T) {
	repo := newFakeModerationRepo()
	uc := NewScanContentUseCase(repo)

	_, err := uc.Execute(context.Background(), "review", "gone")
	assert.ErrorIs(t, err, moderation.ErrNotFound)
	assert.Empty(t, repo.filters)
}
