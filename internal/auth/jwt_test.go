package auth

import (
	"testing"

	"jobhub_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("64f0c3e1a2b3c4d5e6f70001", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, "64f0c3e1a2b3c4d5e6f70001", claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("64f0c3e1a2b3c4d5e6f70002", "freelancer")
	require.NoError(t, err)

	old := config.AppConfig
	cfg := &config.Config{}
	cfg.JWT.Secret = "another-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
	defer func() { config.AppConfig = old }()

	_, err = ParseToken(token)
	assert.Error(t, err)
}
