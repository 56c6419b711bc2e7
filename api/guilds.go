package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperchat/paperchat/chat"
	"github.com/paperchat/paperchat/service/security"
)

// Request struct for creating a server
type CreateServerRequest struct {
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}

// Handler for creating a server. The requester becomes the owner and first
// member; a default text and voice channel come with it.
func (server *Server) HandleCreateServer(ctx *gin.Context) {
	var req CreateServerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	claims, _ := ctx.Get(claimsKey)
	ownerID := claims.(*security.CustomClaims).AccountID

	guild, err := server.core.CreateServer(ctx, ownerID, req.Name, req.Icon)
	if err != nil {
		server.respondError(ctx, "POST /api/servers", err)
		return
	}

	ctx.JSON(http.StatusCreated, guild)
}

// Handler for listing the requester's servers
func (server *Server) HandleListServers(ctx *gin.Context) {
	claims, _ := ctx.Get(claimsKey)
	requesterID := claims.(*security.CustomClaims).AccountID

	guilds := server.core.ServersFor(requesterID)
	ctx.JSON(http.StatusOK, map[string]any{
		"total":   len(guilds),
		"servers": guilds,
	})
}

// Request struct for creating a channel
type CreateChannelRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required,oneof=text voice"`
}

// Handler for adding a channel to a server
func (server *Server) HandleCreateChannel(ctx *gin.Context) {
	var req CreateChannelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	channel, err := server.core.CreateChannel(ctx, ctx.Param("id"), req.Name, chat.ChannelKind(req.Kind))
	if err != nil {
		server.respondError(ctx, "POST /api/servers/:id/channels", err)
		return
	}

	ctx.JSON(http.StatusCreated, channel)
}

// Handler for joining a server
func (server *Server) HandleJoinServer(ctx *gin.Context) {
	claims, _ := ctx.Get(claimsKey)
	requesterID := claims.(*security.CustomClaims).AccountID

	if err := server.core.JoinServer(ctx, ctx.Param("id"), requesterID); err != nil {
		server.respondError(ctx, "POST /api/servers/:id/members", err)
		return
	}

	ctx.JSON(http.StatusOK, "Joined successfully")
}
