package config

import (
	"fmt"
	"strings"
)

type EnvVars struct {
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	AppName  string `yaml:"app_name" env:"APP_NAME" env-default:"Moodle Mobile API"`
	Env      string `yaml:"env" env:"ENV" env-default:"DEV"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Debug    bool   `yaml:"debug" env:"DEBUG"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "8000"
	}
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return strings.ToUpper(e.Env)
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

// IsDebug gates the dev-login bypass and the route documentation endpoint.
func (e EnvVars) IsDebug() bool {
	return e.Debug
}
