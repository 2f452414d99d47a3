package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/presentation/controller"
)

// RegisterRoutes registers account and auth endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache) {
	registerCtl := controller.NewRegisterController(pool, jwtSvc)
	loginCtl := controller.NewLoginController(pool, jwtSvc)
	refreshCtl := controller.NewRefreshTokenController(pool, jwtSvc, cache)
	logoutCtl := controller.NewLogoutController(pool, jwtSvc, cache)
	getProfileCtl := controller.NewGetProfileController(pool)
	updateProfileCtl := controller.NewUpdateProfileController(pool)
	changePasswordCtl := controller.NewChangePasswordController(pool)
	listAddrCtl := controller.NewListAddressesController(pool)
	createAddrCtl := controller.NewCreateAddressController(pool)
	updateAddrCtl := controller.NewUpdateAddressController(pool)
	deleteAddrCtl := controller.NewDeleteAddressController(pool)

	auth := g.Group("/auth")
	auth.POST("/register", registerCtl.Handle())
	auth.POST("/login", loginCtl.Handle())
	auth.POST("/refresh", refreshCtl.Handle())

	authed := g.Group("", middleware.JwtAuth(jwtSvc, cache))
	authed.POST("/auth/logout", logoutCtl.Handle())
	authed.GET("/users/me", getProfileCtl.Handle())
	authed.PATCH("/users/me", updateProfileCtl.Handle())
	authed.POST("/users/me/change-password", changePasswordCtl.Handle())
	authed.GET("/users/me/addresses", listAddrCtl.Handle())
	authed.POST("/users/me/addresses", createAddrCtl.Handle())
	authed.PUT("/users/me/addresses/:addressId", updateAddrCtl.Handle())
	authed.DELETE("/users/me/addresses/:addressId", deleteAddrCtl.Handle())
}
