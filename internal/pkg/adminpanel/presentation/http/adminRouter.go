package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/presentation/controller"
)

// RegisterRoutes registers the staff-only panel endpoints.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache) {
	dashboardCtl := controller.NewDashboardController(pool)
	listUsersCtl := controller.NewListUsersController(pool)
	setActiveCtl := controller.NewSetUserActiveController(pool)
	verifyCtl := controller.NewVerifyContractorController(pool)
	healthCtl := controller.NewSystemHealthController(pool)

	panel := g.Group("/admin-panel", middleware.JwtAuth(jwtSvc, cache), middleware.StaffOnly())
	panel.GET("/dashboard", dashboardCtl.Handle())
	panel.GET("/users", listUsersCtl.Handle())
	panel.PUT("/users/:userId/active", setActiveCtl.Handle())
	panel.POST("/users/:userId/verify", verifyCtl.Handle())
	panel.GET("/health", healthCtl.Handle())
}
