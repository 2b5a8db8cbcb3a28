package identity

import (
	"context"
	"fmt"

	"github.com/jrsteele09/lms-mobile-gateway/internal/config"
	"github.com/jrsteele09/lms-mobile-gateway/internal/errors"
	"golang.org/x/oauth2"
)

// Exchanger redeems a Google authorization code (the mobile SDK's server
// auth code) and verifies the ID token that comes back.
type Exchanger struct {
	oauth    *oauth2.Config
	verifier *Verifier
}

// NewExchanger returns nil when no client secret is configured.
func NewExchanger(cfg config.IdentityConfig, verifier *Verifier) *Exchanger {
	if cfg.GetGoogleClientID() == "" || cfg.GetGoogleClientSecret() == "" {
		return nil
	}
	return &Exchanger{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetGoogleClientID(),
			ClientSecret: cfg.GetGoogleClientSecret(),
			RedirectURL:  cfg.GetGoogleRedirectURL(),
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.GetGoogleAuthURL(),
				TokenURL:  cfg.GetGoogleTokenURL(),
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{"openid", "email", "profile"},
		},
		verifier: verifier,
	}
}

func (e *Exchanger) Exchange(ctx context.Context, code string) (*Assertion, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: empty authorization code", errors.ErrInvalidIdentityAssertion)
	}

	token, err := e.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange failed: %w", errors.ErrInvalidIdentityAssertion, err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: no ID token in token response", errors.ErrInvalidIdentityAssertion)
	}

	assertion, ok := e.verifier.Verify(ctx, rawIDToken)
	if !ok {
		return nil, fmt.Errorf("%w: ID token from code exchange did not verify", errors.ErrInvalidIdentityAssertion)
	}
	return assertion, nil
}
