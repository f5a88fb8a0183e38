package repository

import (
	"database/sql"
	"fmt"
	"time"

	"furg/internal/database"
	"furg/internal/models"
)

// DealRepository stores offers from the deals feed.
type DealRepository struct {
	db *database.DB
}

// NewDealRepository creates a new DealRepository.
func NewDealRepository(db *database.DB) *DealRepository {
	return &DealRepository{db: db}
}

// Create inserts a deal and returns its ID.
func (r *DealRepository) Create(deal *models.Deal) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO deals (title, merchant, price, url, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`, deal.Title, deal.Merchant, deal.Price, deal.URL, deal.ExpiresAt)
	if err != nil {
		return 0, fmt.Errorf("creating deal: %w", err)
	}
	return result.LastInsertId()
}

// GetActive retrieves deals that have not expired as of now, newest first.
func (r *DealRepository) GetActive(now time.Time) ([]*models.Deal, error) {
	rows, err := r.db.Query(`
		SELECT id, title, merchant, price, url, expires_at, created_at
		FROM deals
		WHERE expires_at IS NULL OR expires_at > ?
		ORDER BY created_at DESC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("getting deals: %w", err)
	}
	defer rows.Close()

	deals := make([]*models.Deal, 0)
	for rows.Next() {
		deal := &models.Deal{}
		var merchant, url sql.NullString
		var expiresAt sql.NullTime
		err := rows.Scan(
			&deal.ID,
			&deal.Title,
			&merchant,
			&deal.Price,
			&url,
			&expiresAt,
			&deal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning deal: %w", err)
		}
		if merchant.Valid {
			deal.Merchant = merchant.String
		}
		if url.Valid {
			deal.URL = url.String
		}
		if expiresAt.Valid {
			deal.ExpiresAt = &expiresAt.Time
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}

// Delete removes a deal by ID.
func (r *DealRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM deals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting deal: %w", err)
	}
	return nil
}

// DeleteExpired removes deals whose expiry has passed and returns the count.
func (r *DealRepository) DeleteExpired(now time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM deals WHERE expires_at IS NOT NULL AND expires_at <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("deleting expired deals: %w", err)
	}
	return result.RowsAffected()
}
