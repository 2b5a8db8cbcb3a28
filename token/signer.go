package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is an interface for signing and verifying session tokens
type Signer interface {
	// Sign creates a signed JWT token from claims
	Sign(claims jwt.Claims) (string, error)

	// GetVerificationKey returns the key used to verify a parsed token
	GetVerificationKey(token *jwt.Token) (any, error)

	// GetSigningMethod returns the JWT signing method used
	GetSigningMethod() jwt.SigningMethod
}

// HMACSigner implements Signer using a shared secret
type HMACSigner struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

var _ Signer = (*HMACSigner)(nil)

// NewHMACSigner creates a new HMAC signer for the given secret and algorithm
// name (HS256, HS384 or HS512).
func NewHMACSigner(secret, algorithm string) (*HMACSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("[NewHMACSigner] secret must not be empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("[NewHMACSigner] unsupported signing algorithm %q", algorithm)
	}
	return &HMACSigner{
		secret: []byte(secret),
		method: method,
	}, nil
}

func (h *HMACSigner) Sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(h.method, claims)
	signedToken, err := token.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token with HMAC: %w", err)
	}
	return signedToken, nil
}

func (h *HMACSigner) GetVerificationKey(token *jwt.Token) (any, error) {
	if token.Method.Alg() != h.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return h.secret, nil
}

func (h *HMACSigner) GetSigningMethod() jwt.SigningMethod {
	return h.method
}
