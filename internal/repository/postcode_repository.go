package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/prevalence-backend-go/internal/geocode"
)

// PostcodeRepository handles database operations for the postcode
// coordinate lookup table
type PostcodeRepository struct {
	db *sql.DB
}

// NewPostcodeRepository creates a new postcode repository
func NewPostcodeRepository(db *sql.DB) *PostcodeRepository {
	return &PostcodeRepository{db: db}
}

// EnsureSchema creates the postcode table if it does not exist
func (r *PostcodeRepository) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS postcodes (
			postcode TEXT PRIMARY KEY,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL
		)
	`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create postcodes table: %w", err)
	}

	return nil
}

// Import bulk-inserts lookup rows. INSERT OR IGNORE keeps the first
// occurrence per postcode, matching the join's de-duplication rule.
func (r *PostcodeRepository) Import(rows []geocode.PostcodeRow) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO postcodes (postcode, latitude, longitude) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, row := range rows {
		result, err := stmt.Exec(row.Postcode, row.Latitude, row.Longitude)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert postcode %s: %w", row.Postcode, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit postcode import: %w", err)
	}

	return inserted, nil
}

// LoadAll reads the whole lookup table into memory for the join
func (r *PostcodeRepository) LoadAll() (map[string]geocode.Location, error) {
	rows, err := r.db.Query("SELECT postcode, latitude, longitude FROM postcodes")
	if err != nil {
		return nil, fmt.Errorf("failed to query postcodes: %w", err)
	}
	defer rows.Close()

	lookup := make(map[string]geocode.Location)
	for rows.Next() {
		var postcode string
		var loc geocode.Location
		if err := rows.Scan(&postcode, &loc.Latitude, &loc.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan postcode: %w", err)
		}
		lookup[postcode] = loc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read postcodes: %w", err)
	}

	return lookup, nil
}

// Count returns the number of stored postcodes
func (r *PostcodeRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM postcodes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count postcodes: %w", err)
	}
	return count, nil
}
