package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/ayurlink/chat-backend/internal/chat"
	"github.com/ayurlink/chat-backend/internal/database"
	"github.com/ayurlink/chat-backend/internal/handlers"
	ws "github.com/ayurlink/chat-backend/internal/websocket"
	"github.com/ayurlink/chat-backend/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	db := &database.Database{}
	if err := db.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := ws.NewHub()
	go hub.Run()

	notifier := chat.NewNotifier(hub)
	materializer := chat.NewMaterializer(db, notifier)
	ledger := chat.NewLedger(db, notifier, materializer)
	relay := chat.NewRelay(db, notifier)

	authH := handlers.NewAuthHandler(db, jwtMgr, rdb)
	userH := handlers.NewUserHandler(db)
	requestH := handlers.NewChatRequestHandler(db, ledger)
	roomH := handlers.NewRoomHandler(db, hub)
	messageH := handlers.NewHTTPMessageHandler(db, relay)
	wsH := handlers.NewWebSocketHandler(hub, handlers.NewMessageHandler(relay))

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, userH, requestH, roomH, messageH, wsH)

	return &Server{
		Router:     router,
		DB:         db,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
