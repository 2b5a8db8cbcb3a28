package token

import (
	"fmt"

	"github.com/jrsteele09/lms-mobile-gateway/internal/config"
)

// NewSignerFromConfig builds the signer named by the configured algorithm.
// Only the HMAC family is supported; session tokens are verified by the
// gateway alone so there is no public key to publish.
func NewSignerFromConfig(cfg config.TokenConfig) (Signer, error) {
	switch alg := cfg.GetJWTAlgorithm(); alg {
	case "HS256", "HS384", "HS512":
		return NewHMACSigner(cfg.GetJWTSecret(), alg)
	default:
		return nil, fmt.Errorf("unsupported JWT algorithm %q", alg)
	}
}
