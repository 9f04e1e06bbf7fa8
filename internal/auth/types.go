package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// represents JWT claims of an API caller
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

const (
	// issuer stamped on and required of every token
	tokenIssuer = "placewise"

	// context keys set by the middleware
	contextUserID    = "user_id"
	contextUserEmail = "user_email"
)
