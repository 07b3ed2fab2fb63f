package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=3001"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	JWTSecret       string        `env:"JWT_SECRET,       required"`
	TokenTTL        time.Duration `env:"TOKEN_TTL,        default=1h"`
	BcryptCost      int           `env:"BCRYPT_COST,      default=10"`
	SeedEnabled     bool          `env:"SEED_ENABLED,     default=true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=15s"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type StoreConfig struct {
	// Driver selects the credential store: mongo, postgres, mysql or sqlite.
	Driver string `env:"STORE_DRIVER, default=mongo"`
	DSN    string `env:"SQL_DSN,      default=file:scoring.db"`
}

type MongoConfig struct {
	URI           string        `env:"MONGO_URI,                      default=mongodb://localhost:27017"`
	Database      string        `env:"MONGO_DB,                       default=scoring_system"`
	MaxPoolSize   uint64        `env:"MONGO_MAX_POOL_SIZE,            default=50"`
	SelectTimeout time.Duration `env:"MONGO_SERVER_SELECTION_TIMEOUT, default=5s"`
}

type RedisConfig struct {
	Enabled   bool          `env:"REDIS_ENABLED,   default=false"`
	Addr      string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password  string        `env:"REDIS_PASSWORD"`
	DB        int           `env:"REDIS_DB,        default=0"`
	ScoreTTL  time.Duration `env:"SCORE_CACHE_TTL, default=24h"`
	OpTimeout time.Duration `env:"REDIS_TIMEOUT,   default=500ms"`
	PoolSize  int           `env:"REDIS_POOL_SIZE, default=10"`
}

// IsDevelopment reports whether the service runs in a local development setup.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// UsesMongo reports whether the credential store is MongoDB.
func (c *Config) UsesMongo() bool {
	return strings.EqualFold(c.Store.Driver, "mongo") || strings.EqualFold(c.Store.Driver, "mongodb")
}

// Load reads a .env file from the working directory when present and then
// resolves configuration from the environment using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
