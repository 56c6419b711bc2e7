package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperchat/paperchat/service/security"
	"github.com/paperchat/paperchat/service/worker"
)

// Request struct for sending friend request
type AddFriendRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
}

// Handler for sending friend request
func (server *Server) HandleAddFriend(ctx *gin.Context) {
	// Get request body and validate
	var req AddFriendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	// The sender is always the requester of this call
	claims, _ := ctx.Get(claimsKey)
	senderID := claims.(*security.CustomClaims).AccountID

	request, err := server.core.RequestFriend(ctx, senderID, req.ReceiverID)
	if err != nil {
		server.respondError(ctx, "POST /api/friends", err)
		return
	}

	// Return successful message back to client
	ctx.JSON(http.StatusCreated, request)

	// Notify the other side
	sender := server.core.Find(senderID)
	if sender == nil {
		return
	}
	err = server.distributor.DistributeTaskSendNotification(context.Background(), worker.NotificationPayload{
		SourceID: senderID,
		DestID:   req.ReceiverID,
		Content:  fmt.Sprintf("%s has sent a friend request", sender.Tag()),
	})
	if err != nil {
		server.logger.Error("POST /api/friends: failed to create task: send notification", "error", err)
	}
}

// Handler for accepting or rejecting a friend request. The action comes in
// the query parameter: ?action=accept or ?action=reject.
func (server *Server) HandleResolveFriendRequest(ctx *gin.Context) {
	action := ctx.Query("action")
	if action != "accept" && action != "reject" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid value for action"})
		return
	}

	requestID := ctx.Param("id")

	claims, _ := ctx.Get(claimsKey)
	requesterID := claims.(*security.CustomClaims).AccountID

	// Only the addressee may resolve a request
	var senderID string
	for _, pending := range server.core.PendingFor(requesterID) {
		if pending.ID == requestID {
			senderID = pending.FromID
			break
		}
	}
	if senderID == "" {
		ctx.JSON(http.StatusNotFound, ErrorResponse{"No friend request with this ID"})
		return
	}

	var err error
	if action == "accept" {
		err = server.core.AcceptFriend(ctx, requestID)
	} else {
		err = server.core.RejectFriend(ctx, requestID)
	}
	if err != nil {
		server.respondError(ctx, "POST /api/friends/requests/:id", err)
		return
	}

	// Return successful message back to client
	ctx.JSON(http.StatusOK, "Updated successfully")

	// Notify the other side about the change
	resolver := server.core.Find(requesterID)
	if resolver == nil {
		return
	}
	err = server.distributor.DistributeTaskSendNotification(context.Background(), worker.NotificationPayload{
		SourceID: requesterID,
		DestID:   senderID,
		Content:  fmt.Sprintf("%s has %sed your friend request", resolver.Tag(), action),
	})
	if err != nil {
		server.logger.Error("POST /api/friends/requests/:id: failed to create task: send notification", "error", err)
	}
}

// Handler for listing the requester's pending friend requests
func (server *Server) HandlePendingRequests(ctx *gin.Context) {
	claims, _ := ctx.Get(claimsKey)
	requesterID := claims.(*security.CustomClaims).AccountID

	pending := server.core.PendingFor(requesterID)
	ctx.JSON(http.StatusOK, map[string]any{
		"total":    len(pending),
		"requests": pending,
	})
}
