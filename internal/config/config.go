// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the service reads from its environment.
type Config struct {
	Addr        string `env:"FIELDOPS_ADDR" envDefault:":8080"`
	PostgresDSN string `env:"FIELDOPS_PG_DSN"`

	// AuthSecret is the symmetric key shared with the external token
	// issuer. The service refuses to start without it.
	AuthSecret    string `env:"FIELDOPS_AUTH_SECRET"`
	AuthIssuer    string `env:"FIELDOPS_AUTH_ISSUER" envDefault:"fieldops"`
	SessionCookie string `env:"FIELDOPS_SESSION_COOKIE" envDefault:"fo_session"`

	// MembershipTimeout bounds the membership store check; the validator
	// fails closed when it elapses.
	MembershipTimeout time.Duration `env:"FIELDOPS_MEMBERSHIP_TIMEOUT" envDefault:"3s"`

	MaxBodyBytes int64 `env:"FIELDOPS_MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
