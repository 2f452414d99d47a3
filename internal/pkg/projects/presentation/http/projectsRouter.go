package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/presentation/controller"
)

// RegisterRoutes registers the project board, application, milestone and
// progress update endpoints.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache, q qport.Client) {
	listCtl := controller.NewListProjectsController(pool)
	getCtl := controller.NewGetProjectController(pool)

	g.GET("/projects", listCtl.Handle())
	g.GET("/projects/:projectId", getCtl.Handle())

	createCtl := controller.NewCreateProjectController(pool)
	listMineCtl := controller.NewListMyProjectsController(pool)
	updateCtl := controller.NewUpdateProjectController(pool)
	statusCtl := controller.NewChangeStatusController(pool, q)
	applyCtl := controller.NewApplyToProjectController(pool, q)
	listAppsCtl := controller.NewListProjectApplicationsController(pool)
	myAppsCtl := controller.NewListMyApplicationsController(pool)
	decideAppCtl := controller.NewDecideApplicationController(pool, q)
	createMilestoneCtl := controller.NewCreateMilestoneController(pool)
	milestoneStatusCtl := controller.NewSetMilestoneStatusController(pool)
	deleteMilestoneCtl := controller.NewDeleteMilestoneController(pool)
	createUpdateCtl := controller.NewCreateProjectUpdateController(pool, q)
	listUpdatesCtl := controller.NewListProjectUpdatesController(pool)

	authed := g.Group("", middleware.JwtAuth(jwtSvc, cache))
	authed.POST("/projects", createCtl.Handle())
	authed.GET("/projects/mine", listMineCtl.Handle())
	authed.PATCH("/projects/:projectId", updateCtl.Handle())
	authed.POST("/projects/:projectId/status", statusCtl.Handle())

	authed.POST("/projects/:projectId/apply", middleware.ContractorOnly(), applyCtl.Handle())
	authed.GET("/projects/:projectId/applications", listAppsCtl.Handle())
	authed.GET("/applications/mine", middleware.ContractorOnly(), myAppsCtl.Handle())
	authed.POST("/applications/:applicationId/decide", decideAppCtl.Handle())

	authed.POST("/projects/:projectId/milestones", createMilestoneCtl.Handle())
	authed.PUT("/projects/:projectId/milestones/:milestoneId/status", milestoneStatusCtl.Handle())
	authed.DELETE("/projects/:projectId/milestones/:milestoneId", deleteMilestoneCtl.Handle())

	authed.GET("/projects/:projectId/updates", listUpdatesCtl.Handle())
	authed.POST("/projects/:projectId/updates", createUpdateCtl.Handle())
}
