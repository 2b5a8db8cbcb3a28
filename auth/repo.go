package auth

import (
	"context"

	"github.com/jrsteele09/lms-mobile-gateway/identity"
	"github.com/jrsteele09/lms-mobile-gateway/token"
)

// AssertionVerifier verifies third-party identity assertions.
type AssertionVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*identity.Assertion, bool)
}

// CodeExchanger redeems an authorization code for a verified assertion.
type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (*identity.Assertion, error)
}

// AccessTokenValidator validates access tokens.
type AccessTokenValidator interface {
	ValidateAccessToken(raw string) (*token.Claims, error)
}
