package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	mgr := NewManager(TokenConfig{Secret: []byte("secret")})
	userID := uuid.New()

	token, err := mgr.Generate(userID, "alice", true)
	require.NoError(t, err)

	claims, err := mgr.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestValidateWrongSecret(t *testing.T) {
	mgr := NewManager(TokenConfig{Secret: []byte("secret")})
	other := NewManager(TokenConfig{Secret: []byte("different")})

	token, err := mgr.Generate(uuid.New(), "alice", false)
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	mgr := NewManager(TokenConfig{Secret: []byte("secret"), TTL: -time.Minute})

	token, err := mgr.Generate(uuid.New(), "alice", false)
	require.NoError(t, err)

	_, err = mgr.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestDefaultTTL(t *testing.T) {
	mgr := NewManager(TokenConfig{Secret: []byte("secret")})
	assert.Equal(t, 24*time.Hour, mgr.TTL())
}
