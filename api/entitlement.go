package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperchat/paperchat/service/security"
	"github.com/paperchat/paperchat/service/worker"
)

// Request struct for Pro activation. The confirmation code is whatever the
// donation page handed back; it is recorded on trust, not verified.
type ActivateProRequest struct {
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// Handler for unlocking Pro after a donation
func (server *Server) HandleActivatePro(ctx *gin.Context) {
	var req ActivateProRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	claims, _ := ctx.Get(claimsKey)
	accountID := claims.(*security.CustomClaims).AccountID

	if err := server.core.ActivatePro(ctx, accountID, req.ConfirmationCode); err != nil {
		server.respondError(ctx, "POST /api/accounts/me/pro", err)
		return
	}

	ctx.JSON(http.StatusOK, "Pro unlocked")

	// Send a receipt in the background
	account := server.core.Find(accountID)
	if account == nil {
		return
	}
	err := server.distributor.DistributeTaskSendReceipt(context.Background(), worker.ReceiptPayload{
		Email:    account.Email,
		Username: account.Username,
		Code:     req.ConfirmationCode,
	})
	if err != nil {
		server.logger.Error("POST /api/accounts/me/pro: failed to create task: send receipt", "error", err)
	}
}
