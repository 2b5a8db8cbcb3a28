package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	configPathEnvVar = "CONFIG_PATH"
	defaultEnvFile   = ".env"
)

type Config interface {
	EnvConfig
	CorsConfig
	TokenConfig
	UpstreamConfig
	IdentityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	IsDebug() bool
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// Settings is the process configuration. It is built once at start-up and
// passed by value to every component that needs it.
type Settings struct {
	EnvVars  `yaml:",inline"`
	Cors     `yaml:",inline"`
	Tokens   `yaml:",inline"`
	Upstream `yaml:",inline"`
	Identity `yaml:",inline"`
}

var _ Config = Settings{}

// Load reads the configuration from, in order of precedence:
//  1. the explicit path (a .env or .yaml file);
//  2. the file named by CONFIG_PATH;
//  3. ./.env when it exists;
//
// and then overlays environment variables. With no file at all the
// environment alone is used.
func Load(path string) (Settings, error) {
	s := defaultSettings()

	if path == "" {
		path = os.Getenv(configPathEnvVar)
	}
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err == nil {
			path = defaultEnvFile
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Settings{}, fmt.Errorf("config file %q: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// defaultSettings seeds values whose zero value is a valid setting. A bool
// env-default would override an explicit false read from a file.
func defaultSettings() Settings {
	return Settings{EnvVars: EnvVars{Debug: true}}
}

// MustLoad is Load that panics on error.
func MustLoad(path string) Settings {
	s, err := Load(path)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Settings) validate() error {
	if s.Tokens.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if s.Tokens.ExpirationMinutes <= 0 {
		return fmt.Errorf("JWT_EXPIRATION_MINUTES must be positive, got %d", s.Tokens.ExpirationMinutes)
	}
	if s.Tokens.Secret == DefaultJWTSecret && s.GetEnv() != "DEV" {
		return fmt.Errorf("JWT_SECRET must be changed from the development default when ENV is %s", s.GetEnv())
	}
	if s.Upstream.URL == "" {
		return fmt.Errorf("MOODLE_URL must not be empty")
	}
	return nil
}
