package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperchat/paperchat/chat"
	"github.com/paperchat/paperchat/service/security"
)

// Handler for fetching a single account's public data
func (server *Server) HandleGetAccount(ctx *gin.Context) {
	account := server.core.Find(ctx.Param("id"))
	if account == nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{"Account not found"})
		return
	}

	ctx.JSON(http.StatusOK, toUserData(account))
}

// Request struct for updating presence status
type SetStatusRequest struct {
	Status       string `json:"status" binding:"required,oneof=online idle dnd offline"`
	CustomStatus string `json:"custom_status"`
}

// Handler for updating the requester's presence status
func (server *Server) HandleSetStatus(ctx *gin.Context) {
	var req SetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	claims, _ := ctx.Get(claimsKey)
	accountID := claims.(*security.CustomClaims).AccountID

	if err := server.core.SetStatus(ctx, accountID, chat.Status(req.Status), req.CustomStatus); err != nil {
		server.respondError(ctx, "PATCH /api/accounts/me/status", err)
		return
	}

	ctx.JSON(http.StatusOK, "Status updated")
}

// Request struct for updating profile cosmetics
type UpdateProfileRequest struct {
	Avatar       string `json:"avatar"`
	Banner       string `json:"banner"`
	CustomBanner string `json:"custom_banner"`
}

// Handler for updating the requester's profile
func (server *Server) HandleUpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	claims, _ := ctx.Get(claimsKey)
	accountID := claims.(*security.CustomClaims).AccountID

	if err := server.core.UpdateProfile(ctx, accountID, req.Avatar, req.Banner, req.CustomBanner); err != nil {
		server.respondError(ctx, "PATCH /api/accounts/me/profile", err)
		return
	}

	ctx.JSON(http.StatusOK, "Profile updated")
}
