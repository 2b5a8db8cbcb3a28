package config

type IdentityConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleIssuer() string
	GetGoogleJWKSURL() string
	GetGoogleAuthURL() string
	GetGoogleTokenURL() string
	GetGoogleRedirectURL() string
}

type Identity struct {
	ClientID     string `yaml:"google_client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"google_client_secret" env:"GOOGLE_CLIENT_SECRET"`
	Issuer       string `yaml:"google_issuer" env:"GOOGLE_ISSUER" env-default:"https://accounts.google.com"`
	JWKSURL      string `yaml:"google_jwks_url" env:"GOOGLE_JWKS_URL" env-default:"https://www.googleapis.com/oauth2/v3/certs"`
	AuthURL      string `yaml:"google_auth_url" env:"GOOGLE_AUTH_URL" env-default:"https://accounts.google.com/o/oauth2/auth"`
	TokenURL     string `yaml:"google_token_url" env:"GOOGLE_TOKEN_URL" env-default:"https://oauth2.googleapis.com/token"`
	RedirectURL  string `yaml:"google_redirect_url" env:"GOOGLE_REDIRECT_URL"`
}

var _ IdentityConfig = Identity{}

func (i Identity) GetGoogleClientID() string {
	return i.ClientID
}

func (i Identity) GetGoogleClientSecret() string {
	return i.ClientSecret
}

func (i Identity) GetGoogleIssuer() string {
	return i.Issuer
}

func (i Identity) GetGoogleJWKSURL() string {
	return i.JWKSURL
}

func (i Identity) GetGoogleAuthURL() string {
	return i.AuthURL
}

func (i Identity) GetGoogleTokenURL() string {
	return i.TokenURL
}

func (i Identity) GetGoogleRedirectURL() string {
	return i.RedirectURL
}
