package auth

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"github.com/jrsteele09/lms-mobile-gateway/token"
)

const bearerScheme = "bearer"

// Authenticator resolves bearer credentials into session claims.
type Authenticator struct {
	tokens AccessTokenValidator
}

func NewAuthenticator(tokens AccessTokenValidator) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, credential, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", false
	}
	return credential, true
}

// Authenticate validates an access token. Every failure is reported as
// errors.ErrAuthenticationFailure with the cause attached.
func (a *Authenticator) Authenticate(raw string) (*token.Claims, error) {
	if raw == "" {
		return nil, errors.Wrapf(errors.ErrAuthenticationFailure, "missing bearer token")
	}
	claims, err := a.tokens.ValidateAccessToken(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrAuthenticationFailure, err)
	}
	return claims, nil
}
