package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/ayurlink/chat-backend/internal/handlers"
	"github.com/ayurlink/chat-backend/internal/middleware"
	pkgauth "github.com/ayurlink/chat-backend/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *pkgauth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	requestH *handlers.ChatRequestHandler,
	roomH *handlers.RoomHandler,
	messageH *handlers.HTTPMessageHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
	}

	// API endpoints
	api := r.Group("/api", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/users/me", userH.GetMe)
		api.GET("/users/:id", userH.GetUser)

		api.POST("/chat-requests", requestH.Create)
		api.GET("/chat-requests", requestH.List)
		api.GET("/chat-requests/:id", requestH.Get)
		api.POST("/chat-requests/:id/respond", requestH.Respond)

		api.GET("/rooms", roomH.GetMyRooms)
		api.GET("/rooms/:id", roomH.GetRoom)
		api.GET("/rooms/:id/messages", messageH.GetRoomMessages)
		api.POST("/rooms/:id/messages", messageH.SendMessage)
	}

	// WebSocket endpoint
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
