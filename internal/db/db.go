package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var errNotInitialized = errors.New("database not initialized")

// DB wraps a database connection
type DB struct {
	*sql.DB
}

// CachedWeather is a stored forecast payload
type CachedWeather struct {
	Data      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewDB opens (and creates if needed) the SQLite cache at path
func NewDB(path string) (*DB, error) {
	if path == "" {
		path = "dayplanner.db"
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS weather_cache (
			lat        REAL NOT NULL,
			lon        REAL NOT NULL,
			data       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			expires_at INTEGER NOT NULL,
			PRIMARY KEY (lat, lon)
		);
		CREATE TABLE IF NOT EXISTS geocode_cache (
			query      TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			expires_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_weather_cache_expires ON weather_cache (expires_at);
		CREATE INDEX IF NOT EXISTS idx_geocode_cache_expires ON geocode_cache (expires_at);
	`)
	return err
}

// GetCachedWeather returns the unexpired forecast for the rounded
// coordinates, or nil when there is none
func (d *DB) GetCachedWeather(lat, lon float64) (*CachedWeather, error) {
	if d == nil || d.DB == nil {
		return nil, errNotInitialized
	}

	var data string
	var created, expires int64
	err := d.QueryRow(
		"SELECT data, created_at, expires_at FROM weather_cache WHERE lat = ? AND lon = ? AND expires_at > ?",
		lat, lon, time.Now().Unix(),
	).Scan(&data, &created, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("weather cache lookup (%.2f,%.2f): %w", lat, lon, err)
	}

	return &CachedWeather{
		Data:      data,
		CreatedAt: time.Unix(created, 0),
		ExpiresAt: time.Unix(expires, 0),
	}, nil
}

// SetCachedWeather stores a forecast payload for ttl
func (d *DB) SetCachedWeather(lat, lon float64, data string, ttl time.Duration) error {
	if d == nil || d.DB == nil {
		return errNotInitialized
	}

	now := time.Now()
	_, err := d.Exec(
		"INSERT OR REPLACE INTO weather_cache (lat, lon, data, created_at, expires_at) VALUES (?, ?, ?, ?, ?)",
		lat, lon, data, now.Unix(), now.Add(ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("weather cache store (%.2f,%.2f): %w", lat, lon, err)
	}
	return nil
}

// GetCachedGeocode returns the stored autocomplete payload for query
func (d *DB) GetCachedGeocode(query string) (string, bool, error) {
	if d == nil || d.DB == nil {
		return "", false, errNotInitialized
	}

	var data string
	err := d.QueryRow(
		"SELECT data FROM geocode_cache WHERE query = ? AND expires_at > ?",
		query, time.Now().Unix(),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("geocode cache lookup %q: %w", query, err)
	}
	return data, true, nil
}

// SetCachedGeocode stores an autocomplete payload for ttl
func (d *DB) SetCachedGeocode(query, data string, ttl time.Duration) error {
	if d == nil || d.DB == nil {
		return errNotInitialized
	}

	_, err := d.Exec(
		"INSERT OR REPLACE INTO geocode_cache (query, data, expires_at) VALUES (?, ?, ?)",
		query, data, time.Now().Add(ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("geocode cache store %q: %w", query, err)
	}
	return nil
}

// PurgeExpired deletes expired rows and returns how many were removed
func (d *DB) PurgeExpired() (int64, error) {
	if d == nil || d.DB == nil {
		return 0, errNotInitialized
	}

	now := time.Now().Unix()
	var total int64
	for _, table := range []string{"weather_cache", "geocode_cache"} {
		res, err := d.Exec("DELETE FROM "+table+" WHERE expires_at <= ?", now)
		if err != nil {
			return total, fmt.Errorf("purge %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}
