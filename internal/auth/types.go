package auth

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo is the client-facing view of an account.
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Token carries an issued access token and its lifetime in seconds.
type Token struct {
	AccessToken string `json:"token"`
	ExpiresIn   int64  `json:"expires_in"`
}
