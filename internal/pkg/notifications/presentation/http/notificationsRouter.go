package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/presentation/controller"
)

// RegisterRoutes registers notification inbox and preference endpoints.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache) {
	listCtl := controller.NewListNotificationsController(pool)
	markReadCtl := controller.NewMarkReadController(pool)
	getPrefsCtl := controller.NewGetPreferencesController(pool)
	updatePrefsCtl := controller.NewUpdatePreferencesController(pool)

	authed := g.Group("/notifications", middleware.JwtAuth(jwtSvc, cache))
	authed.GET("", listCtl.Handle())
	authed.POST("/mark-read", markReadCtl.Handle())
	authed.GET("/preferences", getPrefsCtl.Handle())
	authed.PUT("/preferences", updatePrefsCtl.Handle())
}
