package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/newswarehouse/internal/domain"
)

// ErrNoArticles is returned when a lookup finds no current articles.
// Callers should check with errors.Is().
var ErrNoArticles = errors.New("no current articles")

// articleColumns lists the read-model columns of a current dimension row.
const articleColumns = `v.id, v.url, v.category, v.headline, v.author, v.body`

// ReadRepository serves the read-only query surface over the warehouse:
// current article listings, date-scoped listings via the fact bridge and the
// calendar, and author aggregates. It never writes.
type ReadRepository struct {
	db *sqlx.DB
}

// NewReadRepository creates a new read repository.
func NewReadRepository(db *sqlx.DB) *ReadRepository {
	return &ReadRepository{db: db}
}

// ListCurrent returns a page of current articles, newest version first, along
// with the total number of current articles.
func (r *ReadRepository) ListCurrent(ctx context.Context, limit, offset int) ([]domain.Article, int, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM article_versions AS v
		WHERE v.is_current
		ORDER BY v.id DESC
		LIMIT $1 OFFSET $2
	`

	articles := []domain.Article{}
	if err := r.db.SelectContext(ctx, &articles, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list current articles: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, currentCountQuery); err != nil {
		return nil, 0, fmt.Errorf("failed to count current articles: %w", err)
	}

	return articles, total, nil
}

// ListByDate returns a page of current articles observed on the given
// calendar date, resolved through the fact bridge and the date dimension.
func (r *ReadRepository) ListByDate(
	ctx context.Context,
	day time.Time,
	limit, offset int,
) ([]domain.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM article_facts AS f
		INNER JOIN article_versions AS v ON v.id = f.version_id
		INNER JOIN calendar_dates AS d ON d.day = f.published_on
		WHERE v.is_current
		  AND d.day = $1
		ORDER BY v.id DESC
		LIMIT $2 OFFSET $3
	`

	articles := []domain.Article{}
	if err := r.db.SelectContext(ctx, &articles, query, day, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list articles for %s: %w", day.Format("2006-01-02"), err)
	}

	return articles, nil
}

// Latest returns the most recent current article. Returns ErrNoArticles when
// the dimension has no current rows.
func (r *ReadRepository) Latest(ctx context.Context) (*domain.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM article_versions AS v
		WHERE v.is_current
		ORDER BY v.id DESC
		LIMIT 1
	`

	var article domain.Article
	err := r.db.GetContext(ctx, &article, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoArticles
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest article: %w", err)
	}

	return &article, nil
}

// TopAuthors returns up to limit authors ordered by current article count,
// ties broken alphabetically. Articles without an author are left out.
func (r *ReadRepository) TopAuthors(ctx context.Context, limit int) ([]domain.AuthorCount, error) {
	query := `
		SELECT v.author, COUNT(*) AS article_count
		FROM article_versions AS v
		WHERE v.is_current
		  AND v.author IS NOT NULL
		GROUP BY v.author
		ORDER BY COUNT(*) DESC, v.author ASC
		LIMIT $1
	`

	authors := []domain.AuthorCount{}
	if err := r.db.SelectContext(ctx, &authors, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list top authors: %w", err)
	}

	return authors, nil
}
