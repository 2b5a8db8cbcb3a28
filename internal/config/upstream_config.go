package config

import (
	"strings"
	"time"
)

type UpstreamConfig interface {
	GetMoodleURL() string
	GetMoodleToken() string
	GetUpstreamTimeout() time.Duration
}

type Upstream struct {
	URL   string `yaml:"moodle_url" env:"MOODLE_URL" env-default:"http://localhost:8090"`
	Token string `yaml:"moodle_token" env:"MOODLE_TOKEN"`
}

var _ UpstreamConfig = Upstream{}

const upstreamTimeout = 30 * time.Second

func (u Upstream) GetMoodleURL() string {
	return strings.TrimRight(u.URL, "/")
}

func (u Upstream) GetMoodleToken() string {
	return u.Token
}

// GetUpstreamTimeout bounds every call to the LMS. It is fixed.
func (Upstream) GetUpstreamTimeout() time.Duration {
	return upstreamTimeout
}
