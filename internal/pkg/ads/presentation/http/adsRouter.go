package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/presentation/controller"
)

// RegisterRoutes registers banner serving for everyone and banner management
// for staff.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache) {
	serveCtl := controller.NewServeAdsController(pool)
	clickCtl := controller.NewClickAdController(pool)

	g.GET("/ads", serveCtl.Handle())
	g.POST("/ads/:adId/click", clickCtl.Handle())

	createCtl := controller.NewCreateAdController(pool)
	listCtl := controller.NewListAdsController(pool)
	activeCtl := controller.NewSetAdActiveController(pool)

	staff := g.Group("/ads", middleware.JwtAuth(jwtSvc, cache), middleware.StaffOnly())
	staff.POST("", createCtl.Handle())
	staff.GET("/all", listCtl.Handle())
	staff.PUT("/:adId/active", activeCtl.Handle())
}
