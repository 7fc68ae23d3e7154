package repository

import (
	"database/sql"

	"sugartrack/internal/model"
)

// ArticleRepository owns the news_articles table. Article identity is the
// title: the pipeline dedups per batch, the unique constraint dedups across
// batches.
type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) InitSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS news_articles (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL UNIQUE,
			original_language VARCHAR(10),
			content TEXT,
			translated_content TEXT,
			source VARCHAR(100),
			source_url TEXT,
			category VARCHAR(50),
			published_at TIMESTAMP,
			image_url TEXT,
			is_translated BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW()
		)
	`)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_news_published
		ON news_articles(published_at DESC)
	`)
	return err
}

func (r *ArticleRepository) ExistsByTitle(title string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM news_articles WHERE title = $1)
	`, title).Scan(&exists)
	return exists, err
}

// Save inserts the article and reports whether a row was created. A title
// collision is not an error, just a false.
func (r *ArticleRepository) Save(article *model.NewsArticle) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO news_articles(title, original_language, content, translated_content,
			source, source_url, category, published_at, image_url, is_translated)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (title) DO NOTHING
		RETURNING id
	`, article.Title, article.OriginalLanguage, article.Content,
		nullString(article.TranslatedContent), article.Source, article.SourceURL,
		article.Category, article.PublishedAt, nullString(article.ImageURL),
		article.IsTranslated).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	article.ID = id
	return true, nil
}

func (r *ArticleRepository) GetFeed(category string, limit, offset int) ([]model.NewsArticle, error) {
	query := `
		SELECT id, title, original_language, content, translated_content,
			source, source_url, category, published_at, image_url, is_translated, created_at
		FROM news_articles
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`
	args := []any{limit, offset}

	if category != model.CategoryAll {
		query = `
			SELECT id, title, original_language, content, translated_content,
				source, source_url, category, published_at, image_url, is_translated, created_at
			FROM news_articles
			WHERE category = $1
			ORDER BY published_at DESC
			LIMIT $2 OFFSET $3
		`
		args = []any{category, limit, offset}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.NewsArticle
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *ArticleRepository) GetFeedTotal(category string) (int, error) {
	var total int
	if category == model.CategoryAll {
		err := r.db.QueryRow(`SELECT COUNT(*) FROM news_articles`).Scan(&total)
		return total, err
	}
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM news_articles WHERE category = $1
	`, category).Scan(&total)
	return total, err
}

func (r *ArticleRepository) GetByID(id int64) (*model.NewsArticle, error) {
	row := r.db.QueryRow(`
		SELECT id, title, original_language, content, translated_content,
			source, source_url, category, published_at, image_url, is_translated, created_at
		FROM news_articles
		WHERE id = $1
	`, id)

	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) UpdateTranslation(id int64, translated string) error {
	_, err := r.db.Exec(`
		UPDATE news_articles
		SET translated_content = $1, is_translated = TRUE
		WHERE id = $2
	`, translated, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*model.NewsArticle, error) {
	var a model.NewsArticle
	var translated, imageURL sql.NullString

	err := row.Scan(&a.ID, &a.Title, &a.OriginalLanguage, &a.Content, &translated,
		&a.Source, &a.SourceURL, &a.Category, &a.PublishedAt, &imageURL,
		&a.IsTranslated, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.TranslatedContent = translated.String
	a.ImageURL = imageURL.String
	return &a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
