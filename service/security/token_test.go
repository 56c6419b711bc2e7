package security

import (
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paperchat/paperchat/util"
	"github.com/stretchr/testify/require"
)

var (
	config  *util.Config
	service *JWTService
)

func TestMain(m *testing.M) {
	config = &util.Config{
		SecretKey:              []byte("test-secret-key"),
		TokenExpiration:        time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
	}
	service = NewJWTService(config)
	os.Exit(m.Run())
}

func TestToken(t *testing.T) {
	// Create test data
	accountID := uuid.NewString()
	tokenType := []TokenType{AccessToken, RefreshToken}[rand.Intn(2)]

	// Create token
	token, err := service.CreateToken(accountID, tokenType)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Verify token
	result, err := service.VerifyToken(token)
	require.NoError(t, err)
	require.NotEmpty(t, result)

	// Compare the test data with the extracted claims
	require.Equal(t, accountID, result.AccountID)
	require.Equal(t, tokenType, result.TokenType)
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	other := NewJWTService(&util.Config{
		SecretKey:       []byte("some-other-key"),
		TokenExpiration: time.Hour,
	})

	token, err := other.CreateToken(uuid.NewString(), AccessToken)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
}

func TestBcryptScheme(t *testing.T) {
	scheme := BcryptScheme{}

	sealed, err := scheme.Seal("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", sealed)

	require.True(t, scheme.Compare(sealed, "hunter22"))
	require.False(t, scheme.Compare(sealed, "wrongpass"))
}
