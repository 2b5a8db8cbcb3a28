package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/lms-mobile-gateway/users"
)

// Type discriminates access tokens from refresh tokens.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

// Claims are the decoded contents of a validated session token.
type Claims struct {
	users.Identity
	Type      Type
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Pair is the credential set handed to the client at login and refresh.
type Pair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int // Access token lifetime in seconds
}

// sessionClaims is the JWT body: {sub, email, fullname, type, exp, iat, jti}.
type sessionClaims struct {
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Type     Type   `json:"type"`
	jwt.RegisteredClaims
}
