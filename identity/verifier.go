package identity

import (
	"context"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/lms-mobile-gateway/internal/config"
	"github.com/rs/zerolog/log"
)

// Assertion is the verified content of a Google ID token.
type Assertion struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Verifier checks Google ID tokens issued to the configured client.
type Verifier struct {
	clientID string
	verifier *oidc.IDTokenVerifier
}

type verifierOptions struct {
	keySet oidc.KeySet
	now    func() time.Time
}

type Option func(*verifierOptions)

// WithKeySet replaces the remote JWKS, typically with an oidc.StaticKeySet.
func WithKeySet(keySet oidc.KeySet) Option {
	return func(o *verifierOptions) {
		o.keySet = keySet
	}
}

func WithNow(now func() time.Time) Option {
	return func(o *verifierOptions) {
		o.now = now
	}
}

// NewVerifier builds a verifier for cfg. ctx bounds the background key
// fetches of the remote key set and should live as long as the process.
func NewVerifier(ctx context.Context, cfg config.IdentityConfig, options ...Option) *Verifier {
	opts := verifierOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.keySet == nil {
		opts.keySet = oidc.NewRemoteKeySet(ctx, cfg.GetGoogleJWKSURL())
	}

	return &Verifier{
		clientID: cfg.GetGoogleClientID(),
		verifier: oidc.NewVerifier(cfg.GetGoogleIssuer(), opts.keySet, &oidc.Config{
			ClientID: cfg.GetGoogleClientID(),
			Now:      opts.now,
		}),
	}
}

// Verify checks the signature, issuer, audience and expiry of rawIDToken.
// Any failure is reported as an absent assertion.
func (v *Verifier) Verify(ctx context.Context, rawIDToken string) (*Assertion, bool) {
	logger := log.Ctx(ctx)

	if v.clientID == "" {
		logger.Warn().Msg("google client id is not configured, rejecting ID token")
		return nil, false
	}
	if rawIDToken == "" {
		return nil, false
	}

	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		logger.Debug().Err(err).Msg("ID token verification failed")
		return nil, false
	}

	var assertion Assertion
	if err := idToken.Claims(&assertion); err != nil {
		logger.Debug().Err(err).Msg("ID token claims are malformed")
		return nil, false
	}
	if assertion.Email == "" {
		logger.Debug().Str("sub", idToken.Subject).Msg("ID token carries no email")
		return nil, false
	}
	return &assertion, true
}
