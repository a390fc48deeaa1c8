package database

import (
	"database/sql"
	"fmt"
	"time"
)

type jobLockRepository struct {
	db *sql.DB
}

func NewJobLockRepository(db *sql.DB) JobLockRepository {
	return &jobLockRepository{db: db}
}

// Acquire takes the named lock for ttl. It returns false when another holder
// has the lock and its expiry has not passed yet.
func (r *jobLockRepository) Acquire(name string, ttl time.Duration) (bool, error) {
	now := time.Now().UTC()

	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin lock transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedUntil time.Time
	err = tx.QueryRow(`SELECT locked_until FROM job_locks WHERE name = ?`, name).Scan(&lockedUntil)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.Exec(`INSERT INTO job_locks (name, locked_until) VALUES (?, ?)`, name, now.Add(ttl))
		if err != nil {
			return false, fmt.Errorf("failed to insert job lock: %w", err)
		}
	case err != nil:
		return false, fmt.Errorf("failed to read job lock: %w", err)
	case lockedUntil.After(now):
		return false, nil
	default:
		_, err = tx.Exec(`UPDATE job_locks SET locked_until = ? WHERE name = ?`, now.Add(ttl), name)
		if err != nil {
			return false, fmt.Errorf("failed to update job lock: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit job lock: %w", err)
	}

	return true, nil
}

func (r *jobLockRepository) Release(name string) error {
	_, err := r.db.Exec(`DELETE FROM job_locks WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to release job lock: %w", err)
	}
	return nil
}
