package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/realtime"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	accountsHTTP "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/presentation/http"
	adminHTTP "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/presentation/http"
	adsHTTP "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/presentation/http"
	chatHTTP "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/presentation/http"
	contractorsHTTP "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/presentation/http"
	moderationHTTP "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/presentation/http"
	notificationsHTTP "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/presentation/http"
	projectsHTTP "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/presentation/http"
	reviewsHTTP "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache, q qport.Client, rt *realtime.Router) {
	apiV1 := r.Group("/api/v1")

	accountsHTTP.RegisterRoutes(apiV1, pool, jwtSvc, cache)
	contractorsHTTP.RegisterRoutes(apiV1, pool, jwtSvc, cache)
	projectsHTTP.RegisterRoutes(apiV1, pool, jwtSvc, cache, q)
	reviewsHTTP.RegisterRoutes(apiV1, pool, jwtSvc, cache, q)
	chatHTTP.RegisterRoutes(apiV1, pool, jwtSvc, cache, q, rt)
	notificationsHTTP.RegisterRoutes(apiV1, pool, jwtSvc, cache)
	moderationHTTP.RegisterRoutes(apiV1, pool, jwtSvc, cache)
	adsHTTP.RegisterRoutes(apiV1, pool, jwtSvc, cache)
	adminHTTP.RegisterRoutes(apiV1, pool, jwtSvc, cache)
}
