package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	appName = "scoring-system"

	defaultTimeout        = 5 * time.Second
	defaultConnectTimeout = 10 * time.Second
	defaultSelectTimeout  = 5 * time.Second
	defaultMaxPoolSize    = uint64(50)
)

// Config holds the MongoDB connection settings of the credential store.
type Config struct {
	URI      string
	Database string
	// Timeout bounds the initial connect and ping.
	Timeout time.Duration
	// ServerSelectionTimeout bounds how long an operation waits for a usable
	// server before failing.
	ServerSelectionTimeout time.Duration
	MaxPoolSize            uint64
}

// clientOptions turns cfg into driver options, filling in defaults.
func clientOptions(cfg Config) (*options.ClientOptions, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo: URI is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongo: database name is required")
	}

	selectTimeout := cfg.ServerSelectionTimeout
	if selectTimeout <= 0 {
		selectTimeout = defaultSelectTimeout
	}
	poolSize := cfg.MaxPoolSize
	if poolSize == 0 {
		poolSize = defaultMaxPoolSize
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(selectTimeout).
		SetMaxPoolSize(poolSize)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("mongo: invalid URI: %w", err)
	}
	return opts, nil
}

// Connect opens a client, pings the primary and returns the configured
// database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
