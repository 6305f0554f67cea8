package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// gin context keys set by AuthMiddleware
const (
	contextUserID  = "user_id"
	contextEmail   = "user_email"
	contextIsAdmin = "is_admin"
)

// claims carried by operator bearer tokens.
// only tokens with is_admin reach the /api/v1/admin routes
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
