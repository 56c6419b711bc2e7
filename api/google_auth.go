package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperchat/paperchat/chat"
	"github.com/paperchat/paperchat/service/security"
	"github.com/paperchat/paperchat/util"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth interface
type OAuth interface {
	HandleOAuth(ctx *gin.Context)
	HandleCallback(ctx *gin.Context)
}

// OAuth implementation of Google
type GoogleOAuth struct {
	OAuthConfig *oauth2.Config
	core        *chat.Core
	jwtService  *security.JWTService
	config      *util.Config
	logger      *slog.Logger
}

// This is the response from OAuth provider, not data return to client
type UserDataResp struct {
	ID       string `json:"id"`
	Username string `json:"name"`
	Email    string `json:"email"`
}

func NewGoogleAuth(
	core *chat.Core,
	jwtService *security.JWTService,
	config *util.Config,
	logger *slog.Logger,
) OAuth {
	googleConfig := &oauth2.Config{
		RedirectURL:  fmt.Sprintf("%s/oauth2/callback", config.BaseURL),
		ClientID:     config.GoogleClientID,
		ClientSecret: config.GoogleClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	return &GoogleOAuth{
		OAuthConfig: googleConfig,
		core:        core,
		jwtService:  jwtService,
		config:      config,
		logger:      logger,
	}
}

func (auth *GoogleOAuth) HandleOAuth(ctx *gin.Context) {
	url := auth.OAuthConfig.AuthCodeURL("")
	ctx.Redirect(http.StatusTemporaryRedirect, url)
}

func (auth *GoogleOAuth) HandleCallback(ctx *gin.Context) {
	// Get the code return by OAuth provider
	code := ctx.Query("code")
	if code == "" {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Missing authorization code"})
		return
	}

	token, err := auth.OAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		auth.logger.Error("GET /oauth2/callback: failed to exchange code for token", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	// Fetch user data
	client := auth.OAuthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		auth.logger.Error("GET /oauth2/callback: failed to fetch user data from OAuth provider")
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}
	defer resp.Body.Close()

	// Get user data from response
	var userData UserDataResp
	if err = json.NewDecoder(resp.Body).Decode(&userData); err != nil {
		auth.logger.Error("GET /oauth2/callback: failed to decode user data fetched from OAuth provider", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	// Resolve the OAuth identity to an account, registering on first login
	account, err := auth.core.FindOrCreateOAuth(ctx, userData.Username, userData.Email)
	if err != nil {
		auth.logger.Error("GET /oauth2/callback: failed to resolve account", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	// Create JWT tokens and return them back to client
	accessToken, err := auth.jwtService.CreateToken(account.ID, security.AccessToken)
	if err != nil {
		auth.logger.Error("GET /oauth2/callback: failed to create JWT access token")
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}
	refreshToken, err := auth.jwtService.CreateToken(account.ID, security.RefreshToken)
	if err != nil {
		auth.logger.Error("GET /oauth2/callback: failed to create JWT refresh token")
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, AuthResponse{
		UserData: toUserData(account),
		Tokens: Tokens{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	})
}
