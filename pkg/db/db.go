package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed base.sql
var baseSQL string

// Database is a key-value settings store kept in a single sqlite table.
type Database struct {
	conn *sql.DB
}

// NewDatabase connects to the sqlite database at the given filename and initializes the
// structure if not present.
func NewDatabase(ctx context.Context, filename string) (*Database, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	database := Database{
		conn: conn,
	}

	err = database.initialize(ctx)
	if err != nil {
		conn.Close()

		return nil, err
	}

	return &database, nil
}

func (d *Database) initialize(ctx context.Context) error {
	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := d.conn.ExecContext(ctx, baseSQL); err != nil {
		return fmt.Errorf("error running base sql: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.conn.Close()
}

// Get returns the value stored under key. ok is false if nothing is stored there.
func (d *Database) Get(ctx context.Context, key string) (value []byte, ok bool, err error) {
	row := d.conn.QueryRowContext(ctx, `SELECT value FROM setting WHERE key = $1`, key)

	err = row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("error reading setting '%s': %w", key, err)
	}

	return value, true, nil
}

// Set stores value under key, replacing anything already there.
func (d *Database) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	_, err := d.conn.ExecContext(
		ctx,
		`INSERT INTO setting (key, value, updated_datetime) VALUES ($1, $2, $3)
		     ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_datetime = excluded.updated_datetime`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("error writing setting '%s': %w", key, err)
	}

	log.Debug().Str("key", key).Int("bytes", len(value)).Msg("wrote setting")

	return nil
}
