package repository

import (
	"fmt"
	"time"

	"furg/internal/database"
	"furg/internal/models"
)

// SnapshotRepository stores balance snapshots for the net-worth series.
type SnapshotRepository struct {
	db *database.DB
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(db *database.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Record writes a balance snapshot for an account.
func (r *SnapshotRepository) Record(accountID int64, balance float64, recordedAt time.Time) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO balance_snapshots (account_id, balance, recorded_at)
		VALUES (?, ?, ?)
	`, accountID, balance, recordedAt)
	if err != nil {
		return 0, fmt.Errorf("recording snapshot: %w", err)
	}
	return result.LastInsertId()
}

// GetByAccountID retrieves all snapshots for one account, oldest first.
func (r *SnapshotRepository) GetByAccountID(accountID int64) ([]models.BalanceSnapshot, error) {
	return r.querySnapshots(`
		SELECT id, account_id, balance, recorded_at
		FROM balance_snapshots
		WHERE account_id = ?
		ORDER BY recorded_at ASC
	`, accountID)
}

// GetByUserID retrieves all snapshots across a user's accounts, oldest first.
func (r *SnapshotRepository) GetByUserID(userID int64) ([]models.BalanceSnapshot, error) {
	return r.querySnapshots(`
		SELECT s.id, s.account_id, s.balance, s.recorded_at
		FROM balance_snapshots s
		JOIN accounts a ON a.id = s.account_id
		WHERE a.user_id = ?
		ORDER BY s.recorded_at ASC
	`, userID)
}

// GetByUserIDSince retrieves a user's snapshots recorded on or after the cutoff.
func (r *SnapshotRepository) GetByUserIDSince(userID int64, since time.Time) ([]models.BalanceSnapshot, error) {
	return r.querySnapshots(`
		SELECT s.id, s.account_id, s.balance, s.recorded_at
		FROM balance_snapshots s
		JOIN accounts a ON a.id = s.account_id
		WHERE a.user_id = ? AND s.recorded_at >= ?
		ORDER BY s.recorded_at ASC
	`, userID, since)
}

func (r *SnapshotRepository) querySnapshots(query string, args ...any) ([]models.BalanceSnapshot, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("getting snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]models.BalanceSnapshot, 0)
	for rows.Next() {
		var s models.BalanceSnapshot
		if err := rows.Scan(&s.ID, &s.AccountID, &s.Balance, &s.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// DeleteOlderThan removes snapshots recorded before the cutoff and returns the count.
func (r *SnapshotRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM balance_snapshots WHERE recorded_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	return result.RowsAffected()
}
