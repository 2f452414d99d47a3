package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/presentation/controller"
)

// RegisterRoutes registers the review endpoints. Reading a contractor's
// reviews is public; writing requires a signed-in user.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache, q qport.Client) {
	listCtl := controller.NewListReviewsController(pool)
	g.GET("/contractors/:contractorId/reviews", listCtl.Handle())

	createCtl := controller.NewCreateReviewController(pool, q)
	respondCtl := controller.NewRespondToReviewController(pool, q)
	voteCtl := controller.NewVoteHelpfulController(pool)

	authed := g.Group("/reviews", middleware.JwtAuth(jwtSvc, cache))
	authed.POST("", createCtl.Handle())
	authed.POST("/:reviewId/response", middleware.ContractorOnly(), respondCtl.Handle())
	authed.POST("/:reviewId/helpful", voteCtl.Handle())
}
