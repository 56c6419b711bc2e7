package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paperchat/paperchat/chat"
	"github.com/paperchat/paperchat/service/security"
)

// User data return to client
type UserData struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Tag           string `json:"tag"`
	Avatar        string `json:"avatar"`
	Status        string `json:"status"`
	Pro           bool   `json:"pro"`
}

// Struct holds both access token and refresh token
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Response struct after login
type AuthResponse struct {
	UserData UserData `json:"user"`
	Tokens   Tokens   `json:"tokens"`
}

func toUserData(account *chat.Account) UserData {
	return UserData{
		ID:            account.ID,
		Username:      account.Username,
		Discriminator: account.Discriminator,
		Tag:           account.Tag(),
		Avatar:        account.Avatar,
		Status:        string(account.Status),
		Pro:           account.Pro,
	}
}

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Confirm  string `json:"confirm" binding:"required"`
}

// Handler for account registration. The discriminator is always
// auto-assigned here; pick-your-own is not a product feature.
func (server *Server) HandleRegister(ctx *gin.Context) {
	// Get request body and validate
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	if req.Password != req.Confirm {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Passwords do not match"})
		return
	}

	account, err := server.core.Register(ctx, req.Username, "", req.Password)
	if err != nil {
		server.respondError(ctx, "POST /api/auth/register", err)
		return
	}

	ctx.JSON(http.StatusCreated, toUserData(account))
}

// Request struct for login. Identity is the full handle, e.g. "alice#4821".
type LoginRequest struct {
	Identity string `json:"identity" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Handler for login
func (server *Server) HandleLogin(ctx *gin.Context) {
	// Get request body and validate
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	username, discriminator, ok := splitHandle(req.Identity)
	if !ok {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid format. Use Username#1234"})
		return
	}

	account, err := server.core.Authenticate(ctx, username, discriminator, req.Password)
	if err != nil {
		server.respondError(ctx, "POST /api/auth/login", err)
		return
	}

	tokens, err := server.issueTokens(account.ID)
	if err != nil {
		server.logger.Error("POST /api/auth/login: failed to create JWT tokens", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, AuthResponse{
		UserData: toUserData(account),
		Tokens:   tokens,
	})
}

// Handler for refreshing the token pair. AuthMiddleware has already checked
// that the presented token is a refresh token.
func (server *Server) HandleRefreshToken(ctx *gin.Context) {
	claims, _ := ctx.Get(claimsKey)
	accountID := claims.(*security.CustomClaims).AccountID

	account := server.core.Find(accountID)
	if account == nil {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{"Account no longer exists"})
		return
	}

	tokens, err := server.issueTokens(account.ID)
	if err != nil {
		server.logger.Error("POST /api/auth/token/refresh: failed to create JWT tokens", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, AuthResponse{
		UserData: toUserData(account),
		Tokens:   tokens,
	})
}

func (server *Server) issueTokens(accountID string) (Tokens, error) {
	accessToken, err := server.jwtService.CreateToken(accountID, security.AccessToken)
	if err != nil {
		return Tokens{}, err
	}
	refreshToken, err := server.jwtService.CreateToken(accountID, security.RefreshToken)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// splitHandle parses "Username#1234" into its parts.
func splitHandle(handle string) (username, discriminator string, ok bool) {
	parts := strings.Split(handle, "#")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
