package model

import "github.com/golang-jwt/jwt/v5"

// User is an admin account. Only admins can mutate the glossary.
type User struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"not null;uniqueIndex" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserInfo is the user shape exposed over the API.
type UserInfo struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token. The same token is also
// set as an HttpOnly cookie so browser clients need not store it.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        UserInfo `json:"user"`
}

// SessionClaims is the JWT payload for an admin session.
type SessionClaims struct {
	jwt.RegisteredClaims
}

type ctxKey string

// UserIDKey is the request-context key under which the auth middleware
// stores the authenticated user's id.
const UserIDKey ctxKey = "user_id"
