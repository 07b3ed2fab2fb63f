// Package sqlstore implements the credential store on database/sql. One code
// path serves PostgreSQL (pgx), MySQL and SQLite; the Dialect carries the
// differences.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yol1/scoring-system/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings needed to open a relational store.
type Config struct {
	Driver string
	DSN    string
}

// Store implements ports.CredentialStore on a *sql.DB.
type Store struct {
	db      *sql.DB
	dialect Dialect
	users   *UserRepository
	scores  *ScoreRepository
}

// Open connects, verifies connectivity and applies pending migrations.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Store, error) {
	d, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s open: %w", d.Name, err)
	}

	if d.Name == SQLite.Name {
		// SQLite allows a single writer; an in-memory database also lives
		// and dies with its connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s ping: %w", d.Name, err)
	}

	if err := Migrate(ctx, db, d, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewStore(db, d), nil
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB, d Dialect) *Store {
	return &Store{
		db:      db,
		dialect: d,
		users:   NewUserRepository(db, d),
		scores:  NewScoreRepository(db, d),
	}
}

func (s *Store) Users() ports.UserRepository { return s.users }
func (s *Store) Scores() ports.ScoreRepository { return s.scores }

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s ping: %w", s.dialect.Name, err)
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}
