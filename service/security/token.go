package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/paperchat/paperchat/util"
)

type JWTService struct {
	config *util.Config
}

type TokenType string

const (
	Issuer = "paperchat"

	AccessToken  TokenType = "access-token"
	RefreshToken TokenType = "refresh-token"
)

type CustomClaims struct {
	AccountID            string    `json:"account_id"`
	TokenType            TokenType `json:"token_type"`
	jwt.RegisteredClaims           // Embed the JWT Registered claims
}

func NewJWTService(config *util.Config) *JWTService {
	return &JWTService{
		config: config,
	}
}

func (service *JWTService) CreateToken(accountID string, tokenType TokenType) (string, error) {
	// Check token type and decide expiration time based on type
	var expiration time.Duration
	switch tokenType {
	case AccessToken:
		expiration = service.config.TokenExpiration
	case RefreshToken:
		expiration = service.config.RefreshTokenExpiration
	default:
		return "", fmt.Errorf("invalid token type")
	}

	claims := CustomClaims{
		AccountID: accountID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	// Generate token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign token
	tokenStr, err := token.SignedString(service.config.SecretKey)
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

func (service *JWTService) VerifyToken(signedToken string) (*CustomClaims, error) {
	// Use custom parser with leeway of 30 secs
	parser := jwt.NewParser(jwt.WithLeeway(30 * time.Second))

	// Parse token
	parsedToken, err := parser.ParseWithClaims(signedToken, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		// Check for signing method to avoid [alg: none] trick
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return service.config.SecretKey, nil
	})

	if err != nil {
		return nil, err
	}

	// Extract claims from token
	claims, ok := parsedToken.Claims.(*CustomClaims)
	if !(ok && parsedToken.Valid) {
		return nil, jwt.ErrTokenInvalidClaims
	}

	if claims.Issuer != Issuer {
		return nil, fmt.Errorf("invalid issuer")
	}

	if claims.TokenType != AccessToken && claims.TokenType != RefreshToken {
		return nil, fmt.Errorf("invalid token type")
	}

	return claims, nil
}
