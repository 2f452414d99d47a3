package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/presentation/controller"
)

// RegisterRoutes registers contractor directory and profile-management endpoints.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache) {
	searchCtl := controller.NewSearchContractorsController(pool)
	getCtl := controller.NewGetContractorController(pool)
	categoriesCtl := controller.NewListCategoriesController(pool, cache)
	skillsCtl := controller.NewListSkillsController(pool, cache)
	upsertCtl := controller.NewUpsertProfileController(pool)
	listPortfolioCtl := controller.NewListMyPortfolioController(pool)
	createPortfolioCtl := controller.NewCreatePortfolioItemController(pool)
	updatePortfolioCtl := controller.NewUpdatePortfolioItemController(pool)
	deletePortfolioCtl := controller.NewDeletePortfolioItemController(pool)
	listCertsCtl := controller.NewListMyCertificationsController(pool)
	createCertCtl := controller.NewCreateCertificationController(pool)
	deleteCertCtl := controller.NewDeleteCertificationController(pool)

	// Public directory
	g.GET("/contractors", searchCtl.Handle())
	g.GET("/contractors/:contractorId", getCtl.Handle())
	g.GET("/categories", categoriesCtl.Handle())
	g.GET("/skills", skillsCtl.Handle())

	// Owner-side management, contractor accounts only
	me := g.Group("/contractors/me", middleware.JwtAuth(jwtSvc, cache), middleware.ContractorOnly())
	me.PUT("", upsertCtl.Handle())
	me.GET("/portfolio", listPortfolioCtl.Handle())
	me.POST("/portfolio", createPortfolioCtl.Handle())
	me.PUT("/portfolio/:itemId", updatePortfolioCtl.Handle())
	me.DELETE("/portfolio/:itemId", deletePortfolioCtl.Handle())
	me.GET("/certifications", listCertsCtl.Handle())
	me.POST("/certifications", createCertCtl.Handle())
	me.DELETE("/certifications/:certId", deleteCertCtl.Handle())
}
