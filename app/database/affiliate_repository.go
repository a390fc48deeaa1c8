package database

import (
	"database/sql"
	"fmt"
	"time"
)

type affiliateLinkRepository struct {
	db *sql.DB
}

func NewAffiliateLinkRepository(db *sql.DB) AffiliateLinkRepository {
	return &affiliateLinkRepository{db: db}
}

const affiliateColumns = `id, keyword, url, platform, active, click_count, created_at, updated_at`

func (r *affiliateLinkRepository) Upsert(keyword, url, platform string, active bool) (*AffiliateLink, error) {
	now := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO affiliate_links (keyword, url, platform, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (keyword) DO UPDATE SET
			url = excluded.url,
			platform = excluded.platform,
			active = excluded.active,
			updated_at = excluded.updated_at
	`, keyword, url, platform, active, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert affiliate link: %w", err)
	}

	row := r.db.QueryRow(`SELECT `+affiliateColumns+` FROM affiliate_links WHERE keyword = ?`, keyword)
	return r.scanLink(row)
}

func (r *affiliateLinkRepository) GetAll() ([]AffiliateLink, error) {
	return r.query(`SELECT ` + affiliateColumns + ` FROM affiliate_links ORDER BY keyword`)
}

func (r *affiliateLinkRepository) GetActive() ([]AffiliateLink, error) {
	return r.query(`SELECT ` + affiliateColumns + ` FROM affiliate_links WHERE active = 1 ORDER BY keyword`)
}

func (r *affiliateLinkRepository) SetActive(id int64, active bool) error {
	_, err := r.db.Exec(`
		UPDATE affiliate_links
		SET active = ?, updated_at = ?
		WHERE id = ?
	`, active, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set affiliate link active status: %w", err)
	}
	return nil
}

func (r *affiliateLinkRepository) TrackClick(id int64) error {
	_, err := r.db.Exec(`
		UPDATE affiliate_links
		SET click_count = click_count + 1, updated_at = ?
		WHERE id = ?
	`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to track affiliate click: %w", err)
	}
	return nil
}

func (r *affiliateLinkRepository) query(query string) ([]AffiliateLink, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get affiliate links: %w", err)
	}
	defer rows.Close()

	var links []AffiliateLink
	for rows.Next() {
		var link AffiliateLink
		err := rows.Scan(
			&link.ID, &link.Keyword, &link.URL, &link.Platform,
			&link.Active, &link.ClickCount, &link.CreatedAt, &link.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan affiliate link row: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating affiliate link rows: %w", err)
	}

	return links, nil
}

func (r *affiliateLinkRepository) scanLink(row *sql.Row) (*AffiliateLink, error) {
	var link AffiliateLink
	err := row.Scan(
		&link.ID, &link.Keyword, &link.URL, &link.Platform,
		&link.Active, &link.ClickCount, &link.CreatedAt, &link.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan affiliate link: %w", err)
	}
	return &link, nil
}
