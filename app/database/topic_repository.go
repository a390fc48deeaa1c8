package database

import (
	"database/sql"
	"fmt"
	"time"
)

type topicRepository struct {
	db *sql.DB
}

func NewTopicRepository(db *sql.DB) TopicRepository {
	return &topicRepository{db: db}
}

const topicColumns = `id, keyword, search_volume, trend_score, status, discovered_at, claimed_at, processed_at`

func (r *topicRepository) Insert(keyword string, searchVolume int, trendScore float64) (*Topic, error) {
	res, err := r.db.Exec(`
		INSERT INTO topics (keyword, search_volume, trend_score, status, discovered_at)
		VALUES (?, ?, ?, ?, ?)
	`, keyword, searchVolume, trendScore, TopicPending, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert topic: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted topic id: %w", err)
	}

	return r.GetByID(id)
}

func (r *topicRepository) GetByID(id int64) (*Topic, error) {
	row := r.db.QueryRow(`SELECT `+topicColumns+` FROM topics WHERE id = ?`, id)
	return r.scanTopic(row)
}

// GetActiveByKeyword returns a topic with the given keyword that is still
// pending or in progress. Terminal topics do not block re-discovery.
func (r *topicRepository) GetActiveByKeyword(keyword string) (*Topic, error) {
	row := r.db.QueryRow(`
		SELECT `+topicColumns+`
		FROM topics
		WHERE keyword = ? AND status IN (?, ?)
		LIMIT 1
	`, keyword, TopicPending, TopicInProgress)
	return r.scanTopic(row)
}

func (r *topicRepository) GetRecent(limit int) ([]Topic, error) {
	rows, err := r.db.Query(`
		SELECT `+topicColumns+`
		FROM topics
		ORDER BY discovered_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent topics: %w", err)
	}
	defer rows.Close()

	var topics []Topic
	for rows.Next() {
		topic, err := r.scanTopicRow(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, *topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topic rows: %w", err)
	}

	return topics, nil
}

// NextPending returns the pending topic with the highest trend score, or nil
// when no pending topics remain.
func (r *topicRepository) NextPending() (*Topic, error) {
	row := r.db.QueryRow(`
		SELECT `+topicColumns+`
		FROM topics
		WHERE status = ?
		ORDER BY trend_score DESC
		LIMIT 1
	`, TopicPending)
	return r.scanTopic(row)
}

// SetStatus updates the topic status. Moving to in_progress stamps claimed_at
// so staleness is judged from when the run picked the topic up, not from when
// the feed discovered it.
func (r *topicRepository) SetStatus(id int64, status string) error {
	var err error
	if status == TopicInProgress {
		_, err = r.db.Exec(`UPDATE topics SET status = ?, claimed_at = ? WHERE id = ?`, status, time.Now().UTC(), id)
	} else {
		_, err = r.db.Exec(`UPDATE topics SET status = ? WHERE id = ?`, status, id)
	}
	if err != nil {
		return fmt.Errorf("failed to set topic status: %w", err)
	}
	return nil
}

// MarkProcessed stamps a terminal status. Calling it on an already-terminal
// topic overwrites silently.
func (r *topicRepository) MarkProcessed(id int64, status string) error {
	_, err := r.db.Exec(`
		UPDATE topics
		SET status = ?, processed_at = ?
		WHERE id = ?
	`, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark topic processed: %w", err)
	}
	return nil
}

// ReleaseStale returns in_progress topics claimed longer ago than the given
// age back to pending. A crash between pick-up and terminal marking would
// otherwise leave the keyword blocked forever. Rows without a claim stamp
// fall back to discovered_at.
func (r *topicRepository) ReleaseStale(olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := r.db.Exec(`
		UPDATE topics
		SET status = ?, claimed_at = NULL
		WHERE status = ? AND COALESCE(claimed_at, discovered_at) < ?
	`, TopicPending, TopicInProgress, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to release stale topics: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check release result: %w", err)
	}
	return int(affected), nil
}

func (r *topicRepository) GetStats() (total, pending, completed int, err error) {
	err = r.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0)
		FROM topics
	`).Scan(&total, &pending, &completed)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get topic stats: %w", err)
	}
	return total, pending, completed, nil
}

func (r *topicRepository) scanTopic(row *sql.Row) (*Topic, error) {
	var topic Topic
	var claimedAt, processedAt sql.NullTime

	err := row.Scan(
		&topic.ID, &topic.Keyword, &topic.SearchVolume, &topic.TrendScore,
		&topic.Status, &topic.DiscoveredAt, &claimedAt, &processedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan topic: %w", err)
	}

	if claimedAt.Valid {
		topic.ClaimedAt = &claimedAt.Time
	}
	if processedAt.Valid {
		topic.ProcessedAt = &processedAt.Time
	}

	return &topic, nil
}

func (r *topicRepository) scanTopicRow(rows *sql.Rows) (*Topic, error) {
	var topic Topic
	var claimedAt, processedAt sql.NullTime

	err := rows.Scan(
		&topic.ID, &topic.Keyword, &topic.SearchVolume, &topic.TrendScore,
		&topic.Status, &topic.DiscoveredAt, &claimedAt, &processedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan topic row: %w", err)
	}

	if claimedAt.Valid {
		topic.ClaimedAt = &claimedAt.Time
	}
	if processedAt.Valid {
		topic.ProcessedAt = &processedAt.Time
	}

	return &topic, nil
}
