// Package storage opens the durable backend behind the configuration store
// and the translation cache.
//
// Two backends are supported:
//   - Networked: PostgreSQL, used when a connection string is configured
//   - Embedded: a local SQLite file, always available
//
// The backend is chosen once by Open. When the networked backend cannot be
// reached, Open logs the failure and falls back to the embedded backend for
// the lifetime of the process.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"translatebot/internal/repository/sqlrepo"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Backend identifies which durable store is in use
type Backend int

const (
	// Embedded is the local SQLite backend
	Embedded Backend = iota
	// Networked is the PostgreSQL backend
	Networked
)

func (b Backend) String() string {
	switch b {
	case Networked:
		return "networked"
	default:
		return "embedded"
	}
}

// Dialect returns the SQL dialect spoken by the backend
func (b Backend) Dialect() sqlrepo.Dialect {
	if b == Networked {
		return sqlrepo.Postgres
	}
	return sqlrepo.SQLite
}

// Config holds storage settings
type Config struct {
	// DSN is the PostgreSQL connection string. Empty selects the embedded backend.
	DSN             string
	SQLitePath      string
	ConnectAttempts int
	ConnectDelay    time.Duration
}

// Store is an open database with its backend tag
type Store struct {
	DB      *sql.DB
	Backend Backend
}

// Open connects to the configured backend and applies migrations.
// It only fails when the embedded backend itself cannot be opened.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.DSN) != "" {
		store, err := openNetworked(ctx, cfg, logger)
		if err == nil {
			return store, nil
		}
		logger.Error("Networked store unavailable, falling back to embedded store",
			zap.Error(err),
			zap.String("sqlite_path", cfg.SQLitePath),
		)
	}

	return openEmbedded(cfg, logger)
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Preferences returns a user preference repository on this store
func (s *Store) Preferences() *sqlrepo.PreferenceRepo {
	return sqlrepo.NewPreferenceRepo(s.DB, s.Backend.Dialect())
}

// Channels returns a channel settings repository on this store
func (s *Store) Channels() *sqlrepo.ChannelRepo {
	return sqlrepo.NewChannelRepo(s.DB, s.Backend.Dialect())
}

// Cache returns a translation cache repository on this store
func (s *Store) Cache() *sqlrepo.CacheRepo {
	return sqlrepo.NewCacheRepo(s.DB, s.Backend.Dialect())
}

func openNetworked(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	db, err := connectDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db, Networked, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Networked store ready")
	return &Store{DB: db, Backend: Networked}, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(ctx context.Context, cfg Config, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		if i > 0 && cfg.ConnectDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(cfg.ConnectDelay):
			}
		}

		db, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			continue
		}

		// Test connection
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

func openEmbedded(cfg Config, logger *zap.Logger) (*Store, error) {
	path := strings.TrimSpace(cfg.SQLitePath)
	if path == "" {
		path = "translations.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("make sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite prefers a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	if err := Migrate(db, Embedded, logger); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Embedded store ready", zap.String("path", path))
	return &Store{DB: db, Backend: Embedded}, nil
}
