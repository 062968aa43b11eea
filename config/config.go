// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/stevemurr/biblioteca-api/store"
)

// Prefix is the environment variable prefix, e.g. LIBROS_SERVER_PORT.
const Prefix = "LIBROS"

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `envconfig:"SERVER"`
	Store      StoreConfig      `envconfig:"STORE"`
	Firestore  FirestoreConfig  `envconfig:"FIRESTORE"`
	Redis      RedisConfig      `envconfig:"REDIS"`
	Log        LogConfig        `envconfig:"LOG"`
	Validation ValidationConfig `envconfig:"VALIDATION"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"PORT" default:"3000"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DocsHost is the host:port advertised in the API docs. Wildcard listen
// addresses are shown as localhost.
func (s ServerConfig) DocsHost() string {
	host := s.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, strconv.Itoa(s.Port))
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Backend    string `envconfig:"BACKEND" default:"file"`
	Collection string `envconfig:"COLLECTION" default:"biblioteca"`
	DataDir    string `envconfig:"DATA_DIR" default:"./data"`
}

// FirestoreConfig is used only by the firestore backend.
type FirestoreConfig struct {
	ProjectID       string `envconfig:"PROJECT_ID"`
	CredentialsFile string `envconfig:"CREDENTIALS_FILE"`
}

// RedisConfig is used only by the redis backend.
type RedisConfig struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
	Prefix   string `envconfig:"PREFIX" default:"libros"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEVELOPMENT" default:"false"`
}

// ValidationConfig toggles request body checks.
type ValidationConfig struct {
	RequireFields bool `envconfig:"REQUIRE_FIELDS" default:"false"`
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over the .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// StoreOptions maps the configuration onto store.Options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:                  c.Store.Backend,
		DataDir:                  c.Store.DataDir,
		FirestoreProjectID:       c.Firestore.ProjectID,
		FirestoreCredentialsFile: c.Firestore.CredentialsFile,
		RedisAddr:                c.Redis.Addr,
		RedisPassword:            c.Redis.Password,
		RedisDB:                  c.Redis.DB,
		RedisPrefix:              c.Redis.Prefix,
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Store.Collection == "" {
		return errors.New("store collection must not be empty")
	}
	switch c.Store.Backend {
	case "file", "sqlite", "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("redis backend requires LIBROS_REDIS_ADDR")
		}
	case "firestore":
		// Project id and credentials may come from the environment
		// (GOOGLE_APPLICATION_CREDENTIALS, emulator), so neither is mandatory.
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}
	return nil
}
