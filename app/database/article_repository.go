package database

import (
	"database/sql"
	"fmt"
)

var _ ArticleRepository = (*articleRepository)(nil)

// articleRepository handles database operations for articles
type articleRepository struct {
	db *DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *DB) ArticleRepository {
	return &articleRepository{db: db}
}

// ExistsByExternalID checks whether an article with the given external
// identifier has already been stored.
func (r *articleRepository) ExistsByExternalID(externalID string) (bool, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM articles WHERE external_id = $1 LIMIT 1`, externalID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existing article: %w", err)
	}
	return true, nil
}

// InsertBatch stores the given articles in a single transaction and returns
// the number of rows actually inserted. Rows that collide on external_id
// (a concurrent ingestion run won the race) are silently dropped by the
// unique-constraint backstop rather than aborting the batch.
func (r *articleRepository) InsertBatch(articles []Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, a := range articles {
		result, err := tx.Exec(`
			INSERT INTO articles (
				external_id, title, description, snippet, content,
				url, image_url, source, language, published_at, search_keyword
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (external_id) DO NOTHING
		`, a.ExternalID, a.Title, a.Description, a.Snippet, a.Content,
			a.URL, a.ImageURL, a.Source, a.Language, a.PublishedAt, a.SearchKeyword)
		if err != nil {
			return 0, fmt.Errorf("failed to insert article %s: %w", a.ExternalID, err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read insert result: %w", err)
		}
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit articles: %w", err)
	}

	return inserted, nil
}

// GetByID returns a single article by its database UUID, or nil when no
// such article exists.
func (r *articleRepository) GetByID(id string) (*Article, error) {
	row := r.db.QueryRow(`
		SELECT id, external_id, COALESCE(title, ''), COALESCE(description, ''),
		       COALESCE(snippet, ''), content, COALESCE(url, ''),
		       COALESCE(image_url, ''), COALESCE(source, ''),
		       COALESCE(language, 'en'), published_at,
		       COALESCE(search_keyword, ''), fetched_at
		FROM articles
		WHERE id = $1
	`, id)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

// List returns one page of articles ordered by published_at descending,
// along with the total number of articles matching the filters.
func (r *articleRepository) List(opts ListOptions) ([]Article, int, error) {
	where := ""
	args := []interface{}{}

	if opts.SearchKeyword != "" {
		args = append(args, opts.SearchKeyword)
		where += fmt.Sprintf(" AND search_keyword = $%d", len(args))
	}
	if opts.Source != "" {
		args = append(args, opts.Source)
		where += fmt.Sprintf(" AND source = $%d", len(args))
	}

	var total int
	err := r.db.QueryRow("SELECT COUNT(*) FROM articles WHERE 1=1"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	args = append(args, opts.PageSize, (opts.Page-1)*opts.PageSize)
	query := fmt.Sprintf(`
		SELECT id, external_id, COALESCE(title, ''), COALESCE(description, ''),
		       COALESCE(snippet, ''), content, COALESCE(url, ''),
		       COALESCE(image_url, ''), COALESCE(source, ''),
		       COALESCE(language, 'en'), published_at,
		       COALESCE(search_keyword, ''), fetched_at
		FROM articles
		WHERE 1=1%s
		ORDER BY published_at DESC NULLS LAST
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, *article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, total, nil
}

// GetArticleCount returns the total number of stored articles
func (r *articleRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*Article, error) {
	var a Article
	err := row.Scan(
		&a.ID, &a.ExternalID, &a.Title, &a.Description,
		&a.Snippet, &a.Content, &a.URL,
		&a.ImageURL, &a.Source,
		&a.Language, &a.PublishedAt,
		&a.SearchKeyword, &a.FetchedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
