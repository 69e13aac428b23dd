package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the JWT payload of an API session.
type SessionClaims struct {
	TeacherID int64  `json:"teacher_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// SessionResponse carries an issued session token.
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
