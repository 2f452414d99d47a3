package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
)

// fakeProjectRepo is an in-memory ProjectRepository for use case tests.
type fakeProjectRepo struct {
	mu           sync.Mutex
	projects     map[string]*projects.Project
	applications map[string]*projects.Application
	contractors  map[string]string // userID -> contractorID
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects:     map[string]*projects.Project{},
		applications: map[string]*projects.Application{},
		contractors:  map[string]string{},
	}
}

func (f *fakeProjectRepo) CreateProject(_ context.Context, p projects.Project) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[p.ID] = &p
	return p.ID, nil
}

func (f *fakeProjectRepo) GetProject(_ context.Context, projectID string) (*projects.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.projects[projectID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, projects.ErrNotFound
}

func (f *fakeProjectRepo) ListProjects(context.Context, projects.SearchFilter) ([]projects.Project, int, error) {
	return nil, 0, nil
}

func (f *fakeProjectRepo) UpdateProject(_ context.Context, p projects.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.projects[p.ID]; !ok {
		return projects.ErrNotFound
	}
	f.projects[p.ID] = &p
	return nil
}

func (f *fakeProjectRepo) UpdateStatus(_ context.Context, projectID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[projectID]
	if !ok {
		return projects.ErrNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeProjectRepo) IncrementViews(context.Context, string) error   { return nil }
func (f *fakeProjectRepo) SetProgress(context.Context, string, int) error { return nil }
func (f *fakeProjectRepo) CreateMilestone(context.Context, projects.Milestone) (string, error) {
	return "ms-1", nil
}
func (f *fakeProjectRepo) ListMilestones(context.Context, string) ([]projects.Milestone, error) {
	return nil, nil
}
func (f *fakeProjectRepo) UpdateMilestone(context.Context, projects.Milestone) error { return nil }
func (f *fakeProjectRepo) DeleteMilestone(context.Context, string, string) error     { return nil }
func (f *fakeProjectRepo) ListOverdueMilestones(context.Context, time.Time, int) ([]projects.Milestone, error) {
	return nil, nil
}
func (f *fakeProjectRepo) CreateUpdate(context.Context, projects.Update) (string, error) {
	return "upd-1", nil
}
func (f *fakeProjectRepo) ListUpdates(context.Context, string, int, int) ([]projects.Update, int, error) {
	return nil, 0, nil
}
func (f *fakeProjectRepo) MarkCompleted(context.Context, string) error { return nil }

func (f *fakeProjectRepo) ResolveContractor(_ context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.contractors[userID]; ok {
		return id, nil
	}
	return "", projects.ErrNotFound
}

func (f *fakeProjectRepo) ContractorUser(_ context.Context, contractorID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for userID, id := range f.contractors {
		if id == contractorID {
			return userID, nil
		}
	}
	return "", projects.ErrNotFound
}

func (f *fakeProjectRepo) CreateApplication(_ context.Context, a projects.Application) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applications[a.ID] = &a
	return a.ID, nil
}

func (f *fakeProjectRepo) GetApplication(_ context.Context, applicationID string) (*projects.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.applications[applicationID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, projects.ErrNotFound
}

func (f *fakeProjectRepo) ListApplications(_ context.Context, projectID string) ([]projects.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []projects.Application
	for _, a := range f.applications {
		if a.ProjectID == projectID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) ListContractorApplications(context.Context, string) ([]projects.Application, error) {
	return nil, nil
}

func (f *fakeProjectRepo) SetApplicationStatus(_ context.Context, applicationID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.applications[applicationID]
	if !ok {
		return projects.ErrNotFound
	}
	a.Status = status
	return nil
}

// AcceptApplication mirrors the SQL transaction: accept the bid, reject the
// remaining pending bids, assign the contractor and flip the project to
// in_progress.
func (f *fakeProjectRepo) AcceptApplication(_ context.Context, a projects.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	accepted, ok := f.applications[a.ID]
	if !ok {
		return projects.ErrNotFound
	}
	accepted.Status = projects.ApplicationAccepted
	for _, sibling := range f.applications {
		if sibling.ProjectID == a.ProjectID && sibling.ID != a.ID && sibling.Status == projects.ApplicationPending {
			sibling.Status = projects.ApplicationRejected
		}
	}
	p, ok := f.projects[a.ProjectID]
	if !ok {
		return projects.ErrNotFound
	}
	contractorID := a.ContractorID
	p.ContractorID = &contractorID
	p.Status = projects.StatusInProgress
	return nil
}

// fakeQueue records every enqueued task.
type fakeQueue struct {
	mu    sync.Mutex
	tasks []qport.Task
}

func (f *fakeQueue) Enqueue(_ context.Context, t qport.Task, _ ...qport.EnqueueOption) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
	return "task-1", nil
}

func (f *fakeQueue) Close() error { return nil }

func decideFixture() *fakeProjectRepo {
	repo := newFakeProjectRepo()
	repo.projects["proj-1"] = &projects.Project{
		ID:       "proj-1",
		ClientID: "client-1",
		Title:    "Kitchen remodel",
		Status:   projects.StatusPublished,
	}
	repo.contractors["user-a"] = "contractor-a"
	repo.contractors["user-b"] = "contractor-b"
	repo.applications["app-a"] = &projects.Application{
		ID: "app-a", ProjectID: "proj-1", ContractorID: "contractor-a", Status: projects.ApplicationPending,
	}
	repo.applications["app-b"] = &projects.Application{
		ID: "app-b", ProjectID: "proj-1", ContractorID: "contractor-b", Status: projects.ApplicationPending,
	}
	return repo
}

func TestDecideApplicationAcceptFlow(t *testing.T) {
	repo := decideFixture()
	q := &fakeQueue{}
	uc := NewDecideApplicationUseCase(repo, q)

	require.NoError(t, uc.Execute(context.Background(), "app-a", "client-1", "accept"))

	assert.Equal(t, projects.ApplicationAccepted, repo.applications["app-a"].Status)
	assert.Equal(t, projects.ApplicationRejected, repo.applications["app-b"].Status)

	p := repo.projects["proj-1"]
	require.NotNil(t, p.ContractorID)
	assert.Equal(t, "contractor-a", *p.ContractorID)
	assert.Equal(t, projects.StatusInProgress, p.Status)

	require.Len(t, q.tasks, 1)
	assert.Equal(t, notificationtask.DeliverNotificationTaskType, q.tasks[0].Type)
	var payload notificationtask.DeliverNotificationTaskPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload, &payload))
	assert.Equal(t, "user-a", payload.UserID)
	assert.Equal(t, notifications.KindApplicationStatus, payload.Kind)
}

func TestDecideApplicationAcceptRequiresOpenProject(t *testing.T) {
	repo := decideFixture()
	repo.projects["proj-1"].Status = projects.StatusDraft
	uc := NewDecideApplicationUseCase(repo, &fakeQueue{})

	err := uc.Execute(context.Background(), "app-a", "client-1", "accept")
	assert.ErrorIs(t, err, projects.ErrInvalidTransition)
	assert.Equal(t, projects.ApplicationPending, repo.applications["app-a"].Status)
}

func TestDecideApplicationOnlyClientAcceptsOrRejects(t *testing.T) {
	repo := decideFixture()
	uc := NewDecideApplicationUseCase(repo, &fakeQueue{})

	assert.ErrorIs(t, uc.Execute(context.Background(), "app-a", "user-b", "accept"), projects.ErrForbidden)
	assert.ErrorIs(t, uc.Execute(context.Background(), "app-a", "user-b", "reject"), projects.ErrForbidden)
}

func TestDecideApplicationRejectNotifies(t *testing.T) {
	repo := decideFixture()
	q := &fakeQueue{}
	uc := NewDecideApplicationUseCase(repo, q)

	require.NoError(t, uc.Execute(context.Background(), "app-b", "client-1", "reject"))

	assert.Equal(t, projects.ApplicationRejected, repo.applications["app-b"].Status)
	assert.Equal(t, projects.StatusPublished, repo.projects["proj-1"].Status)
	require.Len(t, q.tasks, 1)
	var payload notificationtask.DeliverNotificationTaskPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload, &payload))
	assert.Equal(t, "user-b", payload.UserID)
}

func TestDecideApplicationWithdraw(t *testing.T) {
	repo := decideFixture()
	uc := NewDecideApplicationUseCase(repo, &fakeQueue{})

	assert.ErrorIs(t, uc.Execute(context.Background(), "app-a", "user-b", "withdraw"), projects.ErrForbidden)

	require.NoError(t, uc.Execute(context.Background(), "app-a", "user-a", "withdraw"))
	assert.Equal(t, projects.ApplicationWithdrawn, repo.applications["app-a"].Status)
}

func TestDecideApplicationAlreadyDecided(t *testing.T) {
	repo := decideFixture()
	repo.applications["app-a"].Status = projects.ApplicationAccepted
	uc := NewDecideApplicationUseCase(repo, &fakeQueue{})

	err := uc.Execute(context.Background(), "app-a", "client-1", "accept")
	assert.ErrorIs(t, err, projects.ErrApplicationClosed)
}

func TestDecideApplicationUnknownVerb(t *testing.T) {
	repo := decideFixture()
	uc := NewDecideApplicationUseCase(repo, &fakeQueue{})

	err := uc.Execute(context.Background(), "app-a", "client-1", "maybe")
	assert.ErrorIs(t, err, ErrInvalidApplicationDecision)
}
