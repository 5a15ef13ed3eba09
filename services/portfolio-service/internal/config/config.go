package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/portfolio-api/shared/database"
	"github.com/vasapolrittideah/portfolio-api/shared/discovery"
	"github.com/vasapolrittideah/portfolio-api/shared/mailer"
	"github.com/vasapolrittideah/portfolio-api/shared/security"
)

// PortfolioServiceConfig holds the configuration for the portfolio service.
type PortfolioServiceConfig struct {
	ServiceName           string                 `env:"SERVICE_NAME"            envDefault:"portfolio-service"`
	Environment           string                 `env:"ENVIRONMENT"             envDefault:"development"`
	LogLevel              string                 `env:"LOG_LEVEL"               envDefault:"info"`
	GRPCHealthPort        int                    `env:"GRPC_HEALTH_PORT"        envDefault:"0"`
	GoogleClientID        string                 `env:"GOOGLE_CLIENT_ID"`
	PasswordHashAlgorithm string                 `env:"PASSWORD_HASH_ALGORITHM" envDefault:"bcrypt"`
	HTTP                  HTTPConfig             `envPrefix:"HTTP_"`
	Token                 TokenConfig            `envPrefix:"JWT_"`
	Mongo                 database.MongoConfig   `envPrefix:"MONGO_DB_"`
	SMTP                  mailer.Config          `envPrefix:"SMTP_"`
	Consul                discovery.ConsulConfig `envPrefix:"CONSUL_"`
}

type HTTPConfig struct {
	Host            string        `env:"HOST"             envDefault:"0.0.0.0"`
	Port            int           `env:"PORT"             envDefault:"8000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT"     envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Addr returns the address the HTTP server listens on.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type TokenConfig struct {
	Secret    string        `env:"SECRET,required,notEmpty"`
	Issuer    string        `env:"ISSUER"          envDefault:"portfolio-api"`
	Audience  string        `env:"AUDIENCE"        envDefault:"portfolio-api"`
	ExpiresIn time.Duration `env:"EXPIRES_IN"      envDefault:"24h"`
}

// NewPortfolioServiceConfig creates a PortfolioServiceConfig instance from environment variables.
func NewPortfolioServiceConfig(logger *zerolog.Logger) *PortfolioServiceConfig {
	cfg, err := parse()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	return cfg
}

func parse() (*PortfolioServiceConfig, error) {
	cfg, err := env.ParseAs[PortfolioServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the values the env tags cannot express.
func (c *PortfolioServiceConfig) validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTP.Port)
	}
	if c.GRPCHealthPort < 0 || c.GRPCHealthPort > 65535 {
		return fmt.Errorf("invalid GRPC_HEALTH_PORT %d", c.GRPCHealthPort)
	}
	if c.Token.ExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.Mongo.URI == "" && c.Mongo.Host == "" {
		return errors.New("missing MONGO_DB_URI or MONGO_DB_HOST environment variable")
	}
	if _, err := security.NewHasher(c.PasswordHashAlgorithm); err != nil {
		return fmt.Errorf("invalid PASSWORD_HASH_ALGORITHM: %w", err)
	}

	return c.SMTP.Validate()
}
