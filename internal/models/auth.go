package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the access-token payload issued by the identity
// provider. Role is deliberately absent: privileges come from the role
// tables, re-resolved on every request.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
