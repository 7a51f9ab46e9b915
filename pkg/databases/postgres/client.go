package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/haguru/sakura/config"
	"github.com/lib/pq" // registers the "postgres" driver
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second
	// DefaultTable holds one row per storage key.
	DefaultTable = "kv_store"

	driverName = "postgres"
)

var (
	tablePattern    = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)
	ErrNotConnected = errors.New("postgres client is not connected")
)

// PostgresDatabaseClient implements interfaces.KVStore on a two column
// table (key TEXT PRIMARY KEY, value TEXT).
type PostgresDatabaseClient struct {
	db              *sql.DB
	table           string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewPostgresDatabaseClient builds an unconnected client. Zero pool
// settings fall back to the package defaults.
func NewPostgresDatabaseClient(cfg *config.PostgresConfig) (*PostgresDatabaseClient, error) {
	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}
	if !tablePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	client := &PostgresDatabaseClient{
		table:           table,
		MaxOpenConns:    cfg.Options.MaxOpenConns,
		MaxIdleConns:    cfg.Options.MaxIdleConns,
		ConnMaxLifetime: cfg.Options.ConnMaxLifetime,
	}
	if client.MaxOpenConns <= 0 {
		client.MaxOpenConns = DefaultMaxOpenConns
	}
	if client.MaxIdleConns <= 0 {
		client.MaxIdleConns = DefaultMaxIdleConns
	}
	if client.ConnMaxLifetime <= 0 {
		client.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	return client, nil
}

// Connect establishes a connection to a PostgreSQL database.
func (p *PostgresDatabaseClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return errors.New("postgres DSN is empty")
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	db.SetMaxOpenConns(p.MaxOpenConns)
	db.SetMaxIdleConns(p.MaxIdleConns)
	db.SetConnMaxLifetime(p.ConnMaxLifetime)
	p.db = db

	return p.Ping(ctx)
}

// EnsureTable creates the key/value table if it does not exist.
func (p *PostgresDatabaseClient) EnsureTable(ctx context.Context) error {
	if p.db == nil {
		return ErrNotConnected
	}
	if _, err := p.db.ExecContext(ctx, p.createTableQuery()); err != nil {
		return fmt.Errorf("failed to create table %s: %w", p.table, err)
	}
	return nil
}

func (p *PostgresDatabaseClient) Get(ctx context.Context, key string) (string, bool, error) {
	if p.db == nil {
		return "", false, ErrNotConnected
	}

	var value string
	err := p.db.QueryRowContext(ctx, p.selectQuery(), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func (p *PostgresDatabaseClient) Set(ctx context.Context, key, value string) error {
	if p.db == nil {
		return ErrNotConnected
	}
	if _, err := p.db.ExecContext(ctx, p.upsertQuery(), key, value); err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Ping checks the health of the database connection.
func (p *PostgresDatabaseClient) Ping(ctx context.Context) error {
	if p.db == nil {
		return ErrNotConnected
	}
	return p.db.PingContext(ctx)
}

// Close closes the PostgreSQL database connection.
func (p *PostgresDatabaseClient) Close(context.Context) error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// The table name is validated by tablePattern and quoted, so building the
// statements with Sprintf is safe.
func (p *PostgresDatabaseClient) createTableQuery() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
		pq.QuoteIdentifier(p.table)) // #nosec G201
}

func (p *PostgresDatabaseClient) selectQuery() string {
	return fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, pq.QuoteIdentifier(p.table)) // #nosec G201
}

func (p *PostgresDatabaseClient) upsertQuery() string {
	return fmt.Sprintf(`INSERT INTO %s (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		pq.QuoteIdentifier(p.table)) // #nosec G201
}
