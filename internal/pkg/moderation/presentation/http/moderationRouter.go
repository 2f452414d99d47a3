package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/presentation/controller"
)

// RegisterRoutes registers the reporting endpoint for all signed-in users
// and the review queue, report triage and rule endpoints for staff.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache) {
	reportCtl := controller.NewReportContentController(pool)

	authed := g.Group("/moderation", middleware.JwtAuth(jwtSvc, cache))
	authed.POST("/report", reportCtl.Handle())

	listQueueCtl := controller.NewListQueueController(pool)
	claimCtl := controller.NewClaimQueueItemController(pool)
	decideCtl := controller.NewDecideQueueItemController(pool)
	listReportsCtl := controller.NewListReportsController(pool)
	resolveReportCtl := controller.NewResolveReportController(pool)
	listRulesCtl := controller.NewListRulesController(pool)
	createRuleCtl := controller.NewCreateRuleController(pool)
	disableRuleCtl := controller.NewDisableRuleController(pool)

	staff := authed.Group("", middleware.StaffOnly())
	staff.GET("/queue", listQueueCtl.Handle())
	staff.POST("/queue/:itemId/claim", claimCtl.Handle())
	staff.POST("/queue/:itemId/decide", decideCtl.Handle())
	staff.GET("/reports", listReportsCtl.Handle())
	staff.POST("/reports/:reportId/resolve", resolveReportCtl.Handle())
	staff.GET("/rules", listRulesCtl.Handle())
	staff.POST("/rules", createRuleCtl.Handle())
	staff.DELETE("/rules/:ruleId", disableRuleCtl.Handle())
}
