package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/paperchat/paperchat/chat"
	"github.com/paperchat/paperchat/service/notify"
	"github.com/paperchat/paperchat/service/pubsub"
	"github.com/paperchat/paperchat/service/security"
	"github.com/paperchat/paperchat/service/worker"
	"github.com/paperchat/paperchat/util"
)

type Server struct {
	mux  *gin.Engine
	core *chat.Core

	limiter     *RateLimiter
	jwtService  *security.JWTService
	oauth       OAuth
	upgrader    *websocket.Upgrader
	distributor worker.TaskDistributor
	presence    *pubsub.Hub
	hub         *notify.Hub

	config *util.Config
	logger *slog.Logger
}

func NewServer(
	core *chat.Core,
	config *util.Config,
	presence *pubsub.Hub,
	hub *notify.Hub,
	distributor worker.TaskDistributor,
	logger *slog.Logger,
) *Server {
	// Create dependency
	jwtService := security.NewJWTService(config)
	oauth := NewGoogleAuth(core, jwtService, config, logger)

	return &Server{
		mux:  gin.Default(),
		core: core,

		limiter:    NewRateLimiter(config.MaxRequest, config.RefillRate),
		jwtService: jwtService,
		oauth:      oauth,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		distributor: distributor,
		presence:    presence,
		hub:         hub,

		config: config,
		logger: logger,
	}
}

type ErrorResponse struct {
	Message string `json:"error"`
}

// Helper method to register handler to route
func (server *Server) RegisterHandler() {
	// Setup global middlewares
	server.mux.Use(server.CORSMiddlware(), server.RateLimitingMiddleware())

	api := server.mux.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", server.HandleRegister)
		api.POST("/auth/login", server.HandleLogin)
		api.POST("/auth/token/refresh", server.AuthMiddleware(), server.HandleRefreshToken)
		api.GET("/oauth", server.oauth.HandleOAuth)

		// Account routes
		api.GET("/accounts/:id", server.AuthMiddleware(), server.HandleGetAccount)
		api.PATCH("/accounts/me/status", server.AuthMiddleware(), server.HandleSetStatus)
		api.PATCH("/accounts/me/profile", server.AuthMiddleware(), server.HandleUpdateProfile)
		api.POST("/accounts/me/pro", server.AuthMiddleware(), server.HandleActivatePro)

		// Friend routes
		api.POST("/friends", server.AuthMiddleware(), server.HandleAddFriend)
		api.POST("/friends/requests/:id", server.AuthMiddleware(), server.HandleResolveFriendRequest)
		api.GET("/friends/requests", server.AuthMiddleware(), server.HandlePendingRequests)

		// Messaging routes
		api.POST("/messages", server.AuthMiddleware(), server.HandleSendMessage)
		api.GET("/messages/dm/:peer", server.AuthMiddleware(), server.HandleListDM)
		api.GET("/messages/channel/:channel", server.AuthMiddleware(), server.HandleListChannel)

		// Server (guild) routes
		api.POST("/servers", server.AuthMiddleware(), server.HandleCreateServer)
		api.GET("/servers", server.AuthMiddleware(), server.HandleListServers)
		api.POST("/servers/:id/channels", server.AuthMiddleware(), server.HandleCreateChannel)
		api.POST("/servers/:id/members", server.AuthMiddleware(), server.HandleJoinServer)

		// Presence and data routes
		api.GET("/users/online", server.AuthMiddleware(), server.HandleGetOnlineUsers)
		api.GET("/export", server.AuthMiddleware(), server.HandleExport)

		// Notifications over SSE
		api.GET("/notifications", server.AuthMiddleware(), server.SSEHandler)
	}

	// Websocket routes
	ws := server.mux.Group("/ws")
	{
		ws.GET("/messages", server.AuthMiddleware(), server.HandleWS)
	}

	// Callback URL for OAuth2
	server.mux.GET("/oauth2/callback", server.oauth.HandleCallback)
}

// Method to start the server
func (server *Server) Start() error {
	server.RegisterHandler()
	return server.mux.Run(fmt.Sprintf(":%s", server.config.Port))
}
