package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	appenv "github.com/garrettladley/arcgauge/internal/env"
)

type Config struct {
	Port      string             `env:"PORT" envDefault:"8080"`
	Env       appenv.Environment `env:"ENV" envDefault:"development"`
	Redis     Redis              `envPrefix:"REDIS_"`
	Cache     Cache              `envPrefix:"CACHE_"`
	RateLimit RateLimit          `envPrefix:"RATE_"`
	Server    Server             `envPrefix:"SERVER_"`
}

type Redis struct {
	URL         string        `env:"URL"`
	PingTimeout time.Duration `env:"PING_TIMEOUT" envDefault:"5s"`
}

type Cache struct {
	TTL             time.Duration `env:"TTL" envDefault:"10m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1m"`
	// MaxAge is advertised to clients in Cache-Control.
	MaxAge time.Duration `env:"MAX_AGE" envDefault:"1m"`
}

// RateLimit bounds requests per client IP. Limit 0 disables limiting.
type RateLimit struct {
	Limit  float64       `env:"LIMIT" envDefault:"20"`
	Burst  int           `env:"BURST" envDefault:"40"`
	Window time.Duration `env:"WINDOW" envDefault:"1s"`
}

type Server struct {
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxBodyBytes      int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	TrustRequestID    bool          `env:"TRUST_REQUEST_ID" envDefault:"false"`
}

// UseRedis reports whether renders are cached in Redis rather than memory.
func (c Config) UseRedis() bool { return c.Redis.URL != "" }

func (c Config) validate() error {
	if c.Env.IsProduction() && !c.UseRedis() {
		return fmt.Errorf("REDIS_URL is required in %s", c.Env)
	}
	if c.RateLimit.Limit < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("RATE_LIMIT and RATE_BURST must not be negative")
	}
	if c.RateLimit.Limit > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_WINDOW must be positive, got %s", c.RateLimit.Window)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("SERVER_MAX_BODY_BYTES must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
