package database

import (
	"database/sql"
	"fmt"
	"time"
)

type articleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) ArticleRepository {
	return &articleRepository{db: db}
}

const articleColumns = `id, title, slug, content, excerpt, meta_description, meta_keywords,
	       COALESCE(featured_image_url, ''), status, published_at, word_count, view_count,
	       topic_id, created_at, updated_at`

func (r *articleRepository) Insert(article NewArticle) (*Article, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	var imageURL any
	if article.FeaturedImageURL != "" {
		imageURL = article.FeaturedImageURL
	}

	res, err := tx.Exec(`
		INSERT INTO articles (title, slug, content, excerpt, meta_description, meta_keywords,
		                      featured_image_url, status, published_at, word_count, view_count,
		                      topic_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
	`, article.Title, article.Slug, article.Content, article.Excerpt, article.MetaDescription,
		article.MetaKeywords, imageURL, article.Status, article.PublishedAt, article.WordCount,
		article.TopicID, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted article id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit article: %w", err)
	}

	return r.GetByID(id)
}

func (r *articleRepository) GetBySlug(slug string) (*Article, error) {
	row := r.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE slug = ?`, slug)
	return r.scanArticle(row)
}

func (r *articleRepository) GetByID(id int64) (*Article, error) {
	row := r.db.QueryRow(`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	return r.scanArticle(row)
}

func (r *articleRepository) GetAll() ([]Article, error) {
	rows, err := r.db.Query(`SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles: %w", err)
	}
	defer rows.Close()

	return r.scanArticles(rows)
}

func (r *articleRepository) GetPublished(limit, offset int) ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT `+articleColumns+`
		FROM articles
		WHERE status = ?
		ORDER BY published_at DESC
		LIMIT ? OFFSET ?
	`, ArticlePublished, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get published articles: %w", err)
	}
	defer rows.Close()

	return r.scanArticles(rows)
}

func (r *articleRepository) GetPublishedCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM articles WHERE status = ?`, ArticlePublished).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get published count: %w", err)
	}
	return count, nil
}

func (r *articleRepository) SlugExists(slug string) (bool, error) {
	var id int64
	err := r.db.QueryRow(`SELECT id FROM articles WHERE slug = ? LIMIT 1`, slug).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return true, nil
}

func (r *articleRepository) IncrementViewCount(id int64) error {
	_, err := r.db.Exec(`
		UPDATE articles
		SET view_count = view_count + 1, updated_at = ?
		WHERE id = ?
	`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// UpdateFeaturedImage replaces the featured image URL. An empty url clears
// the field.
func (r *articleRepository) UpdateFeaturedImage(id int64, url string) error {
	var imageURL any
	if url != "" {
		imageURL = url
	}
	_, err := r.db.Exec(`
		UPDATE articles
		SET featured_image_url = ?, updated_at = ?
		WHERE id = ?
	`, imageURL, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update featured image: %w", err)
	}
	return nil
}

// ClearFeaturedImagesBefore nulls the featured image on published articles
// published before the cutoff, so old posts render their gradient instead of
// a rotted image link.
func (r *articleRepository) ClearFeaturedImagesBefore(cutoff time.Time) (int, error) {
	res, err := r.db.Exec(`
		UPDATE articles
		SET featured_image_url = NULL, updated_at = ?
		WHERE status = ? AND published_at < ? AND featured_image_url IS NOT NULL
	`, time.Now().UTC(), ArticlePublished, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clear featured images: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check clear result: %w", err)
	}
	return int(affected), nil
}

func (r *articleRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *articleRepository) DeleteEmpty() (int, error) {
	res, err := r.db.Exec(`DELETE FROM articles WHERE word_count = 0`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete empty articles: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check delete result: %w", err)
	}
	return int(affected), nil
}

func (r *articleRepository) GetStats() (total, published, draft, views int, err error) {
	err = r.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'published' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'draft' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(view_count), 0)
		FROM articles
	`).Scan(&total, &published, &draft, &views)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get article stats: %w", err)
	}
	return total, published, draft, views, nil
}

func (r *articleRepository) scanArticle(row *sql.Row) (*Article, error) {
	var article Article
	var publishedAt sql.NullTime
	var topicID sql.NullInt64

	err := row.Scan(
		&article.ID, &article.Title, &article.Slug, &article.Content, &article.Excerpt,
		&article.MetaDescription, &article.MetaKeywords, &article.FeaturedImageURL,
		&article.Status, &publishedAt, &article.WordCount, &article.ViewCount,
		&topicID, &article.CreatedAt, &article.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}

	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}
	if topicID.Valid {
		article.TopicID = &topicID.Int64
	}

	return &article, nil
}

func (r *articleRepository) scanArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		var article Article
		var publishedAt sql.NullTime
		var topicID sql.NullInt64

		err := rows.Scan(
			&article.ID, &article.Title, &article.Slug, &article.Content, &article.Excerpt,
			&article.MetaDescription, &article.MetaKeywords, &article.FeaturedImageURL,
			&article.Status, &publishedAt, &article.WordCount, &article.ViewCount,
			&topicID, &article.CreatedAt, &article.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}

		if publishedAt.Valid {
			article.PublishedAt = &publishedAt.Time
		}
		if topicID.Valid {
			article.TopicID = &topicID.Int64
		}

		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}
