// Package catalog mirrors the record index into SQLite for aggregate
// reports. The record files stay the source of truth; Sync replaces the
// whole mirror with a fresh index snapshot.
package catalog

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pbaille/worklog/internal/domain"
	"github.com/pbaille/worklog/internal/logging"
)

//go:embed schema.sql
var schema string

// TagCount is the number of logs carrying a tag
type TagCount struct {
	Tag   string
	Count int
}

// YearCount is the number of logs created in a calendar year
type YearCount struct {
	Year  int
	Count int
}

// Catalog handles the SQLite mirror
type Catalog struct {
	db  *sql.DB
	log *slog.Logger
}

// New opens (or creates) the catalog database at dbPath
func New(dbPath string, logger *slog.Logger) (*Catalog, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Catalog{db: db, log: logging.OrDiscard(logger)}, nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Sync replaces the catalog content with logs in one transaction
func (c *Catalog) Sync(logs []domain.Log) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin sync: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM log_tags"); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM logs"); err != nil {
		return fmt.Errorf("clear logs: %w", err)
	}

	insertLog, err := tx.Prepare("INSERT INTO logs (id, subject, created_at, year) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare log insert: %w", err)
	}
	defer insertLog.Close()

	insertTag, err := tx.Prepare("INSERT INTO log_tags (log_id, tag) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare tag insert: %w", err)
	}
	defer insertTag.Close()

	for _, l := range logs {
		if _, err := insertLog.Exec(l.ID, l.Subject, l.CreatedAt, domain.Year(l.CreatedAt)); err != nil {
			return fmt.Errorf("insert log %d: %w", l.ID, err)
		}
		for tag := range l.Tags {
			if _, err := insertTag.Exec(l.ID, tag); err != nil {
				return fmt.Errorf("insert tag %q of log %d: %w", tag, l.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sync: %w", err)
	}

	c.log.Debug("catalog synced", "logs", len(logs))
	return nil
}

// Count returns the number of mirrored logs
func (c *Catalog) Count() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM logs").Scan(&n); err != nil {
		return 0, fmt.Errorf("count logs: %w", err)
	}
	return n, nil
}

// TagCounts returns every tag with its usage, most used first
func (c *Catalog) TagCounts() ([]TagCount, error) {
	rows, err := c.db.Query(
		"SELECT tag, COUNT(*) AS n FROM log_tags GROUP BY tag ORDER BY n DESC, tag ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("tag counts: %w", err)
	}
	defer rows.Close()

	var counts []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan tag count: %w", err)
		}
		counts = append(counts, tc)
	}

	return counts, rows.Err()
}

// YearCounts returns the number of logs per year, newest year first
func (c *Catalog) YearCounts() ([]YearCount, error) {
	rows, err := c.db.Query(
		"SELECT year, COUNT(*) FROM logs GROUP BY year ORDER BY year DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("year counts: %w", err)
	}
	defer rows.Close()

	var counts []YearCount
	for rows.Next() {
		var yc YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, fmt.Errorf("scan year count: %w", err)
		}
		counts = append(counts, yc)
	}

	return counts, rows.Err()
}
