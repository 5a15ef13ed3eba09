package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoConfig holds the connection settings of a MongoDB deployment.
// URI takes precedence over the individual host settings.
type MongoConfig struct {
	URI            string        `env:"URI"`
	Host           string        `env:"HOST"`
	Port           string        `env:"PORT"            envDefault:"27017"`
	User           string        `env:"USER"`
	Pass           string        `env:"PASS"`
	Name           string        `env:"NAME,required,notEmpty"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}

// ConnectionURI returns the URI the client connects with.
func (c MongoConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(c.Host, c.Port),
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Pass)
	}

	return u.String()
}

// Connect opens a client, verifies it with a ping and returns the configured database.
func Connect(ctx context.Context, cfg MongoConfig) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(
		options.Client().
			ApplyURI(cfg.ConnectionURI()).
			SetConnectTimeout(cfg.ConnectTimeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, client.Database(cfg.Name), nil
}

// Pinger returns a probe that checks the client can reach the primary.
func Pinger(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}
