package config

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backend names accepted by STORAGE_BACKEND and SNAPSHOT_MIRRORS.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

var backends = []string{BackendFile, BackendSQLite, BackendRedis, BackendMongo}

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Storage StorageConfig
	Auth    AuthConfig
	HTTP    HTTPConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type StorageConfig struct {
	Backend     string        `env:"STORAGE_BACKEND,  default=file"`
	Path        string        `env:"STORAGE_PATH,     default=data/storage.json"`
	SQLitePath  string        `env:"SQLITE_PATH,      default=data/storage.db"`
	Mirrors     []string      `env:"SNAPSHOT_MIRRORS"`
	SaveTimeout time.Duration `env:"SAVE_TIMEOUT,     default=5s"`
}

type AuthConfig struct {
	PasswordScheme string  `env:"PASSWORD_SCHEME, default=plaintext"`
	TokenLength    int     `env:"TOKEN_LENGTH,    default=32"`
	RateLimit      float64 `env:"AUTH_RATE_LIMIT, default=5"`
	RateBurst      int     `env:"AUTH_RATE_BURST, default=10"`
}

type HTTPConfig struct {
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=healthlog"`
}

type RedisConfig struct {
	Addr        string `env:"REDIS_ADDR,         default=localhost:6379"`
	DB          int    `env:"REDIS_DB,           default=0"`
	SnapshotKey string `env:"REDIS_SNAPSHOT_KEY, default=healthlog:snapshot"`
}

// IsDevelopment reports whether ENV selects the development profile.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Validate rejects unknown backends and mirrors that duplicate the primary.
func (c *Config) Validate() error {
	if !slices.Contains(backends, c.Storage.Backend) {
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	seen := map[string]bool{c.Storage.Backend: true}
	for _, m := range c.Storage.Mirrors {
		if !slices.Contains(backends, m) {
			return fmt.Errorf("unknown SNAPSHOT_MIRRORS entry %q", m)
		}
		if seen[m] {
			return fmt.Errorf("SNAPSHOT_MIRRORS lists %q twice or repeats the primary backend", m)
		}
		seen[m] = true
	}
	if c.Storage.SaveTimeout <= 0 {
		return fmt.Errorf("SAVE_TIMEOUT must be positive")
	}
	if c.Auth.RateLimit < 0 || c.Auth.RateBurst < 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT and AUTH_RATE_BURST must not be negative")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	for i, m := range cfg.Storage.Mirrors {
		cfg.Storage.Mirrors[i] = strings.TrimSpace(m)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
