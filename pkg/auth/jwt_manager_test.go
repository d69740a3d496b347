package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayurlink/chat-backend/pkg/auth"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret", time.Hour)

	token, err := mgr.Generate("user-123", "expert")
	require.NoError(t, err)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "expert", claims.Role)
}

func TestJWTManager_WrongSecretRejected(t *testing.T) {
	token, err := auth.NewJWTManager("secret-a", time.Hour).Generate("user-123", "user")
	require.NoError(t, err)

	_, err = auth.NewJWTManager("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestJWTManager_ExpiredTokenRejected(t *testing.T) {
	mgr := auth.NewJWTManager("test-secret", -time.Minute)

	token, err := mgr.Generate("user-123", "user")
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")

	token, err := auth.ExtractTokenFromHeader(r)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	r.Header.Set("Authorization", "abc123")
	_, err = auth.ExtractTokenFromHeader(r)
	assert.Error(t, err)
}
