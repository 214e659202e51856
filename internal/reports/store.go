// Package reports reads and writes the city reports table backing the
// nammasuttu platform.
package reports

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/nammasuttu/feedsim/internal/event"
)

// queryTimeout bounds every backing-store round trip so a slow database
// degrades to an empty cycle instead of hanging a refresh.
const queryTimeout = 30 * time.Second

// Store wraps the reports table.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres, verifies the connection, and ensures the
// reports schema exists.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS reports (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title TEXT NOT NULL,
		description TEXT,
		location TEXT,
		timestamp TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		category VARCHAR(50),
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		media TEXT,
		truthness_score DECIMAL(3,2),
		sentiment_rate DECIMAL(3,2),
		author TEXT,
		source TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reports_timestamp ON reports(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_reports_category ON reports(category);`

	_, err := s.db.Exec(query)
	return err
}

// FetchRecent returns up to limit reports, newest first.
func (s *Store) FetchRecent(ctx context.Context, limit int) ([]event.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
	SELECT id, title, description, location, timestamp, category,
	       latitude, longitude, media, truthness_score, sentiment_rate,
	       author, source
	FROM reports
	ORDER BY timestamp DESC
	LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Insert persists an extracted fact as a new report row.
func (s *Store) Insert(ctx context.Context, e event.Event) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
	INSERT INTO reports (title, description, location, timestamp, category,
	                     latitude, longitude, media, author, source)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		e.Title, nullStr(e.Description), nullStr(e.Location), ts,
		nullStr(e.Category), e.Latitude, e.Longitude,
		nullStr(e.Media), nullStr(e.Author), nullStr(e.Source))
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanEvent(rows *sql.Rows) (event.Event, error) {
	var (
		e                              event.Event
		description, location          sql.NullString
		category, media                sql.NullString
		author, source                 sql.NullString
		lat, lon, truthness, sentiment sql.NullFloat64
	)

	err := rows.Scan(&e.EventID, &e.Title, &description, &location,
		&e.Timestamp, &category, &lat, &lon, &media, &truthness,
		&sentiment, &author, &source)
	if err != nil {
		return event.Event{}, err
	}

	e.Description = description.String
	e.Location = location.String
	e.Category = category.String
	e.Media = media.String
	e.Author = author.String
	e.Source = source.String
	if lat.Valid {
		e.Latitude = &lat.Float64
	}
	if lon.Valid {
		e.Longitude = &lon.Float64
	}
	if truthness.Valid {
		e.TruthnessScore = &truthness.Float64
	}
	if sentiment.Valid {
		e.SentimentRate = &sentiment.Float64
	}
	return e, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
