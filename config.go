package mockauth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries all engine and server settings. Instances are intended to
// be populated during initialization and then treated as immutable.
type Config struct {
	JWT     JWTConfig
	HTTP    HTTPConfig
	Notify  NotifyConfig
	Metrics MetricsConfig
}

// JWTConfig configures the session token codec. Secret is process-wide;
// rotating it invalidates every outstanding access token, which is the only
// revocation mechanism this system has.
type JWTConfig struct {
	Secret    []byte
	Algorithm string // "HS256" (default), "HS384", "HS512"
	AccessTTL time.Duration
}

// HTTPConfig configures the server surface built on top of the engine.
type HTTPConfig struct {
	ListenAddr string
	// CORSOrigin is the single allowed origin, typically the frontend URL.
	CORSOrigin string
}

// NotifyConfig configures the notification dispatcher that hands
// verification and reset tokens to the external notifier.
type NotifyConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig enables the in-process operation counters.
type MetricsConfig struct {
	Enabled bool
}

const (
	defaultAccessTTL  = 30 * time.Minute
	defaultListenAddr = ":8000"
	defaultCORSOrigin = "http://localhost:3000"
	defaultAlgorithm  = "HS256"
)

// Environment variable names, matching the deployment contract.
const (
	EnvSecretKey        = "SECRET_KEY"
	EnvAlgorithm        = "ALGORITHM"
	EnvAccessTTLMinutes = "ACCESS_TOKEN_EXPIRE_MINUTES"
	EnvFrontendURL      = "FRONTEND_URL"
	EnvListenAddr       = "LISTEN_ADDR"
)

// DefaultConfig returns a Config with every default applied except the
// signing secret, which has no safe default and must be supplied.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			Algorithm: defaultAlgorithm,
			AccessTTL: defaultAccessTTL,
		},
		HTTP: HTTPConfig{
			ListenAddr: defaultListenAddr,
			CORSOrigin: defaultCORSOrigin,
		},
		Notify: NotifyConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// ConfigFromEnv builds a Config from the process environment. A missing or
// empty SECRET_KEY is a fatal misconfiguration and returns an error; every
// other variable falls back to its default.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	secret := os.Getenv(EnvSecretKey)
	if secret == "" {
		return Config{}, fmt.Errorf("%s environment variable is required", EnvSecretKey)
	}
	cfg.JWT.Secret = []byte(secret)

	if alg := os.Getenv(EnvAlgorithm); alg != "" {
		cfg.JWT.Algorithm = alg
	}
	if raw := os.Getenv(EnvAccessTTLMinutes); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("invalid %s value %q", EnvAccessTTLMinutes, raw)
		}
		cfg.JWT.AccessTTL = time.Duration(minutes) * time.Minute
	}
	if origin := os.Getenv(EnvFrontendURL); origin != "" {
		cfg.HTTP.CORSOrigin = origin
	}
	if addr := os.Getenv(EnvListenAddr); addr != "" {
		cfg.HTTP.ListenAddr = addr
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if len(c.JWT.Secret) == 0 {
		return errors.New("signing secret required")
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported signing algorithm %q", c.JWT.Algorithm)
	}
	if c.JWT.AccessTTL < 0 {
		return errors.New("access TTL must not be negative")
	}
	if c.Notify.Enabled && c.Notify.BufferSize < 0 {
		return errors.New("notify buffer size must not be negative")
	}
	return nil
}
