package repository

import (
	"context"
	"time"

	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
)

// ProjectRepository is the persistence port for projects, applications,
// milestones and progress updates.
type ProjectRepository interface {
	CreateProject(ctx context.Context, p projects.Project) (string, error)
	GetProject(ctx context.Context, projectID string) (*projects.Project, error)
	ListProjects(ctx context.Context, filter projects.SearchFilter) ([]projects.Project, int, error)
	UpdateProject(ctx context.Context, p projects.Project) error
	UpdateStatus(ctx context.Context, projectID, status string) error
	IncrementViews(ctx context.Context, projectID string) error
	SetProgress(ctx context.Context, projectID string, percentage int) error

	// ResolveContractor maps an account to its contractor profile id.
	ResolveContractor(ctx context.Context, userID string) (string, error)
	// ContractorUser maps a contractor profile back to its account id.
	ContractorUser(ctx context.Context, contractorID string) (string, error)

	CreateApplication(ctx context.Context, a projects.Application) (string, error)
	GetApplication(ctx context.Context, applicationID string) (*projects.Application, error)
	ListApplications(ctx context.Context, projectID string) ([]projects.Application, error)
	ListContractorApplications(ctx context.Context, contractorID string) ([]projects.Application, error)
	SetApplicationStatus(ctx context.Context, applicationID, status string) error
	// AcceptApplication accepts one bid, rejects the remaining pending bids,
	// assigns the contractor and moves the project to in_progress, atomically.
	AcceptApplication(ctx context.Context, a projects.Application) error

	CreateMilestone(ctx context.Context, m projects.Milestone) (string, error)
	ListMilestones(ctx context.Context, projectID string) ([]projects.Milestone, error)
	UpdateMilestone(ctx context.Context, m projects.Milestone) error
	DeleteMilestone(ctx context.Context, projectID, milestoneID string) error
	ListOverdueMilestones(ctx context.Context, asOf time.Time, limit int) ([]projects.Milestone, error)

	CreateUpdate(ctx context.Context, u projects.Update) (string, error)
	ListUpdates(ctx context.Context, projectID string, limit, offset int) ([]projects.Update, int, error)

	// MarkCompleted finishes a project and bumps the assigned contractor's
	// completed project counter in the same transaction.
	MarkCompleted(ctx context.Context, projectID string) error
}
