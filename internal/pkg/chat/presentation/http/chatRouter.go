package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/realtime"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/presentation/controller"
)

// RegisterRoutes registers the room, message and websocket endpoints.
// REST sends ride the queue; the socket path writes synchronously.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache, q qport.Client, router *realtime.Router) {
	createCtl := controller.NewCreateRoomController(pool)
	listCtl := controller.NewListRoomsController(pool)
	sendCtl := controller.NewSendMessageController(q)
	messagesCtl := controller.NewGetMessagesController(pool)
	readCtl := controller.NewMarkRoomReadController(pool)
	muteCtl := controller.NewMuteRoomController(pool)
	socketCtl := controller.NewChatSocketController(pool, q, router)

	authed := g.Group("/chat", middleware.JwtAuth(jwtSvc, cache))
	authed.POST("/rooms", createCtl.Handle())
	authed.GET("/rooms", listCtl.Handle())
	authed.POST("/rooms/:roomId/messages", sendCtl.Handle())
	authed.GET("/rooms/:roomId/messages", messagesCtl.Handle())
	authed.POST("/rooms/:roomId/read", readCtl.Handle())
	authed.POST("/rooms/:roomId/mute", muteCtl.Handle())
	authed.GET("/ws", socketCtl.Handle())
}
