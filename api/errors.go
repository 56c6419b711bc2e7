package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperchat/paperchat/chat"
)

// respondError translates a chat failure into an HTTP response. Unclassified
// errors become a 500 and are logged; everything in the taxonomy is an
// expected outcome the client should branch on.
func (server *Server) respondError(ctx *gin.Context, route string, err error) {
	var appErr *chat.AppError
	if !errors.As(err, &appErr) {
		server.logger.Error(route+": internal error", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(statusFor(appErr.Code), ErrorResponse{appErr.Message})
}

func statusFor(code chat.Code) int {
	switch code {
	case chat.CodeDuplicateIdentity, chat.CodeAlreadyFriends, chat.CodeDuplicateRequest:
		return http.StatusConflict
	case chat.CodeInvalidUsername, chat.CodeWeakSecret, chat.CodeSelfRequest,
		chat.CodeSelfConversation, chat.CodeInvalidArgument:
		return http.StatusBadRequest
	case chat.CodeNotFound, chat.CodeRequestNotFound:
		return http.StatusNotFound
	case chat.CodeWrongSecret:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
