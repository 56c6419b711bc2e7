package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperchat/paperchat/chat"
	"github.com/paperchat/paperchat/service/pubsub"
	"github.com/paperchat/paperchat/service/security"
	"github.com/paperchat/paperchat/service/worker"
)

// Handler for all Web Socket endpoint
func (server *Server) HandleWS(ctx *gin.Context) {
	// Upgrade request from HTTP to Web Socket
	conn, err := server.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		server.logger.Error("failed to upgrade to Web Socket", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	// Create the client
	claims, _ := ctx.Get(claimsKey)
	requesterID := claims.(*security.CustomClaims).AccountID
	client := pubsub.NewClient(requesterID, conn)

	// Subscribe to the server
	server.presence.Subscribe(client)
	defer server.presence.Unsubscribe(client)

	// Block until client is disconnected
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			server.logger.Info("client disconnected", "id", requesterID, "err", err)
			break
		}
	}
}

// Request struct for sending a message to either a DM peer or a channel.
// Exactly one of receiver_id and channel_id must be set.
type SendMessageRequest struct {
	ReceiverID     string `json:"receiver_id"`
	ChannelID      string `json:"channel_id"`
	Kind           string `json:"kind" binding:"omitempty,oneof=text image file"`
	Content        string `json:"content"`
	AttachmentRef  string `json:"attachment_ref"`
	AttachmentName string `json:"attachment_name"`
}

func (server *Server) HandleSendMessage(ctx *gin.Context) {
	// Get the request body and validate
	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		server.logger.Error("POST /api/messages: failed to parse request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	if (req.ReceiverID == "") == (req.ChannelID == "") {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Provide exactly one of receiver_id and channel_id"})
		return
	}
	if req.Content == "" && req.AttachmentRef == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Message is empty"})
		return
	}

	claims, _ := ctx.Get(claimsKey)
	senderID := claims.(*security.CustomClaims).AccountID

	message := chat.Message{
		Kind:           chat.MessageKind(req.Kind),
		Body:           req.Content,
		AttachmentRef:  req.AttachmentRef,
		AttachmentName: req.AttachmentName,
	}

	var (
		stored     chat.Message
		recipients []string
		err        error
	)
	if req.ReceiverID != "" {
		stored, err = server.core.SendDM(ctx, senderID, req.ReceiverID, message)
		recipients = []string{req.ReceiverID}
	} else {
		stored, err = server.core.SendToChannel(ctx, senderID, req.ChannelID, message)
		if guild := server.core.ServerForChannel(req.ChannelID); guild != nil {
			for _, memberID := range guild.MemberIDs {
				if memberID != senderID {
					recipients = append(recipients, memberID)
				}
			}
		}
	}
	if err != nil {
		server.respondError(ctx, "POST /api/messages", err)
		return
	}

	// Publish the send message event through the worker queue
	err = server.distributor.DistributeTaskSendMessage(context.Background(), worker.MessagePayload{
		Message:      stored,
		RecipientIDs: recipients,
	})
	if err != nil {
		server.logger.Error("POST /api/messages: failed to create background task send message", "error", err)
	}

	ctx.JSON(http.StatusCreated, stored)
}

// Handler for fetching the DM conversation with a peer, oldest first
func (server *Server) HandleListDM(ctx *gin.Context) {
	claims, _ := ctx.Get(claimsKey)
	requesterID := claims.(*security.CustomClaims).AccountID

	messages, err := server.core.ListDM(requesterID, ctx.Param("peer"))
	if err != nil {
		server.respondError(ctx, "GET /api/messages/dm/:peer", err)
		return
	}

	ctx.JSON(http.StatusOK, map[string]any{
		"total":    len(messages),
		"messages": messages,
	})
}

// Handler for fetching a channel's messages, oldest first
func (server *Server) HandleListChannel(ctx *gin.Context) {
	messages := server.core.ListChannel(ctx.Param("channel"))

	ctx.JSON(http.StatusOK, map[string]any{
		"total":    len(messages),
		"messages": messages,
	})
}

// Handler for listing users with a live websocket connection
func (server *Server) HandleGetOnlineUsers(ctx *gin.Context) {
	var users []UserData

	for _, client := range server.presence.All() {
		account := server.core.Find(client.AccountID)
		if account == nil {
			continue
		}
		users = append(users, toUserData(account))
	}

	ctx.JSON(http.StatusOK, map[string]any{
		"total": len(users),
		"users": users,
	})
}

// Handler for exporting the full state as JSON, the product's backup format
func (server *Server) HandleExport(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, server.core.Export())
}
