package repository

import (
	"database/sql"
	"fmt"

	"furg/internal/database"
	"furg/internal/models"
)

// WishlistRepository handles wishlist item storage.
type WishlistRepository struct {
	db *database.DB
}

// NewWishlistRepository creates a new WishlistRepository.
func NewWishlistRepository(db *database.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Create inserts a wishlist item and returns its ID.
func (r *WishlistRepository) Create(item *models.WishlistItem) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO wishlist_items (user_id, name, price, priority, active)
		VALUES (?, ?, ?, ?, ?)
	`, item.UserID, item.Name, item.Price, int(item.Priority), boolToInt(item.Active))
	if err != nil {
		return 0, fmt.Errorf("creating wishlist item: %w", err)
	}
	return result.LastInsertId()
}

// GetByID retrieves a wishlist item by ID. Returns nil if not found.
func (r *WishlistRepository) GetByID(id int64) (*models.WishlistItem, error) {
	row := r.db.QueryRow(`
		SELECT id, user_id, name, price, priority, active, created_at
		FROM wishlist_items
		WHERE id = ?
	`, id)

	item, err := scanWishlistItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting wishlist item: %w", err)
	}
	return item, nil
}

// GetByUserID retrieves all wishlist items for a user.
func (r *WishlistRepository) GetByUserID(userID int64) ([]*models.WishlistItem, error) {
	return r.queryItems(`
		SELECT id, user_id, name, price, priority, active, created_at
		FROM wishlist_items
		WHERE user_id = ?
		ORDER BY priority DESC, price ASC
	`, userID)
}

// GetActiveByUserID retrieves only active wishlist items for a user.
func (r *WishlistRepository) GetActiveByUserID(userID int64) ([]*models.WishlistItem, error) {
	return r.queryItems(`
		SELECT id, user_id, name, price, priority, active, created_at
		FROM wishlist_items
		WHERE user_id = ? AND active = 1
		ORDER BY priority DESC, price ASC
	`, userID)
}

func (r *WishlistRepository) queryItems(query string, args ...any) ([]*models.WishlistItem, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("getting wishlist items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.WishlistItem, 0)
	for rows.Next() {
		item, err := scanWishlistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning wishlist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanWishlistItem(row scanner) (*models.WishlistItem, error) {
	item := &models.WishlistItem{}
	var priority, active int
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Price,
		&priority,
		&active,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Priority = models.Priority(priority)
	item.Active = active == 1
	return item, nil
}

// Update updates a wishlist item.
func (r *WishlistRepository) Update(item *models.WishlistItem) error {
	result, err := r.db.Exec(`
		UPDATE wishlist_items
		SET name = ?, price = ?, priority = ?, active = ?
		WHERE id = ?
	`, item.Name, item.Price, int(item.Priority), boolToInt(item.Active), item.ID)
	if err != nil {
		return fmt.Errorf("updating wishlist item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("wishlist item %d not found", item.ID)
	}
	return nil
}

// Delete removes a wishlist item by ID.
func (r *WishlistRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM wishlist_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting wishlist item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("wishlist item %d not found", id)
	}
	return nil
}

// boolToInt converts a boolean to a SQLite integer (0 or 1).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
