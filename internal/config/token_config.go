package config

import "time"

type TokenConfig interface {
	GetJWTSecret() string
	GetJWTAlgorithm() string
	GetAccessTokenExpiry() time.Duration
}

// DefaultJWTSecret is the signing secret used when JWT_SECRET is unset. It
// is only accepted in the DEV environment.
const DefaultJWTSecret = "dev-secret-change-in-production"

type Tokens struct {
	Secret            string `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"dev-secret-change-in-production"`
	Algorithm         string `yaml:"jwt_algorithm" env:"JWT_ALGORITHM" env-default:"HS256"`
	ExpirationMinutes int    `yaml:"jwt_expiration_minutes" env:"JWT_EXPIRATION_MINUTES" env-default:"60"`
}

var _ TokenConfig = Tokens{}

func (t Tokens) GetJWTSecret() string {
	return t.Secret
}

func (t Tokens) GetJWTAlgorithm() string {
	return t.Algorithm
}

func (t Tokens) GetAccessTokenExpiry() time.Duration {
	return time.Duration(t.ExpirationMinutes) * time.Minute
}
