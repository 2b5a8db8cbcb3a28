package apimodel

// LoginResponse is returned by every endpoint that starts or renews a
// session: Google login, code login, dev login and refresh.
type LoginResponse struct {
	// AccessToken is the session JWT used to call the API.
	// Example: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	// Usage: Include in Authorization header: "Bearer <access_token>"
	// Lifespan: JWT_EXPIRATION_MINUTES (60 by default)
	AccessToken string `json:"access_token"`

	// RefreshToken obtains a new token pair from /auth/refresh.
	// Lifespan: 7 days, not configurable
	// Note: It is rejected everywhere an access token is expected
	RefreshToken string `json:"refresh_token"`

	// TokenType is always "bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Note: This is a hint - actual expiration is in the JWT's "exp" claim
	ExpiresIn int `json:"expires_in"`

	// User is the LMS account the session belongs to.
	User UserResponse `json:"user"`
}

const TokenTypeBearer = "bearer"

// UserResponse is the LMS identity carried by a session.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

// MoodleStatusResponse reports whether the LMS answers with the service
// token.
type MoodleStatusResponse struct {
	Connected bool    `json:"connected"`
	SiteName  *string `json:"site_name,omitempty"`
	Error     *string `json:"error,omitempty"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}
