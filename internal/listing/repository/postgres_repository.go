package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/troyan365/marketplace/internal/listing/domain"
)

// PostgresListingRepository implements ListingRepository with database/sql
type PostgresListingRepository struct {
	db *sql.DB
}

// NewPostgresListingRepository creates a new listing repository
func NewPostgresListingRepository(db *sql.DB) *PostgresListingRepository {
	return &PostgresListingRepository{db: db}
}

const listingColumns = `id, listing_id, title, description, phone_number1, thumbnail_url, creator_id, created_at, updated_at`

func scanListing(row interface{ Scan(...interface{}) error }) (*domain.Listing, error) {
	l := &domain.Listing{}
	var description, thumbnail sql.NullString
	err := row.Scan(
		&l.ID,
		&l.ListingID,
		&l.Title,
		&description,
		&l.PhoneNumber,
		&thumbnail,
		&l.CreatorID,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Description = description.String
	l.ThumbnailURL = thumbnail.String
	return l, nil
}

// Create inserts a new listing into the database
func (r *PostgresListingRepository) Create(listing *domain.Listing) error {
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = time.Now()

	query := `
		INSERT INTO listings (listing_id, title, description, phone_number1, thumbnail_url, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(query,
		listing.ListingID,
		listing.Title,
		nullable(listing.Description),
		listing.PhoneNumber,
		nullable(listing.ThumbnailURL),
		listing.CreatorID,
		listing.CreatedAt,
		listing.UpdatedAt,
	).Scan(&listing.ID)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// FindByListingID retrieves a listing by its public identifier
func (r *PostgresListingRepository) FindByListingID(listingID string) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE listing_id = $1`

	listing, err := scanListing(r.db.QueryRow(query, listingID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return listing, nil
}

// FindLatest retrieves the most recent listings
func (r *PostgresListingRepository) FindLatest(limit int) ([]domain.Listing, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest listings: %w", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

// Search retrieves listings whose title matches the query
func (r *PostgresListingRepository) Search(query string, limit, offset int) ([]domain.Listing, error) {
	if limit <= 0 {
		limit = 20
	}

	stmt := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(stmt, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

// FindByCreator retrieves all listings owned by a user
func (r *PostgresListingRepository) FindByCreator(creatorID uint, limit, offset int) ([]domain.Listing, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE creator_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, creatorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get user listings: %w", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

// Update updates a listing's mutable fields
func (r *PostgresListingRepository) Update(listing *domain.Listing) error {
	listing.UpdatedAt = time.Now()

	query := `
		UPDATE listings
		SET title = $1, description = $2, phone_number1 = $3, thumbnail_url = $4, updated_at = $5
		WHERE listing_id = $6
	`

	result, err := r.db.Exec(query,
		listing.Title,
		nullable(listing.Description),
		listing.PhoneNumber,
		nullable(listing.ThumbnailURL),
		listing.UpdatedAt,
		listing.ListingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("listing not found")
	}

	return nil
}

// Delete removes a listing from the database
func (r *PostgresListingRepository) Delete(listingID string) error {
	result, err := r.db.Exec(`DELETE FROM listings WHERE listing_id = $1`, listingID)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("listing not found")
	}

	return nil
}

// Exists reports whether a listing with the given public id is live.
// A missing listing is not an error.
func (r *PostgresListingRepository) Exists(listingID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM listings WHERE listing_id = $1)`, listingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check listing existence: %w", err)
	}
	return exists, nil
}

// Count returns the total number of listings
func (r *PostgresListingRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM listings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}

// InitSchema creates the listings table if it doesn't exist
func (r *PostgresListingRepository) InitSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS listings (
			id SERIAL PRIMARY KEY,
			listing_id UUID UNIQUE NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			phone_number1 VARCHAR(32) NOT NULL,
			thumbnail_url TEXT,
			creator_id INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_listings_creator ON listings (creator_id);
		CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings (created_at DESC);
	`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func collectListings(rows *sql.Rows) ([]domain.Listing, error) {
	listings := []domain.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}
	return listings, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
