package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/redis/go-redis/v9"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	DataDir string

	FirestoreProjectID       string
	FirestoreCredentialsFile string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// New creates a Store based on the backend name.
//
// Supported backends:
//
//	"firestore" - Cloud Firestore
//	"sqlite"    - SQLite database at DataDir/libros.db
//	"redis"     - one redis hash per collection
//	"file"      - JSON files in DataDir (default)
//	"memory"    - In-memory (ephemeral, for testing)
func New(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "file", "":
		return NewFileStore(opts.DataDir)
	case "sqlite":
		return NewSqliteStore(filepath.Join(opts.DataDir, "libros.db"))
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		return NewRedisStore(client, opts.RedisPrefix), nil
	case "firestore":
		return NewFirestoreStore(ctx, opts.FirestoreProjectID, opts.FirestoreCredentialsFile)
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: firestore, sqlite, redis, file, memory)", opts.Backend)
	}
}
