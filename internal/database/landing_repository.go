package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/newswarehouse/internal/domain"
)

// LandingRepository owns the landing_articles staging table. The table holds
// exactly one scrape batch at a time and is fully replaced on each run; it
// carries no history and no cross-run identity.
type LandingRepository struct {
	db *sqlx.DB
}

// NewLandingRepository creates a new landing repository.
func NewLandingRepository(db *sqlx.DB) *LandingRepository {
	return &LandingRepository{db: db}
}

// Replace atomically discards the prior snapshot and stages the given batch,
// keyed by URL. If the batch contains a duplicate URL the last occurrence
// wins; the frontier filter should prevent that, but a duplicate must not
// fail the run.
func (r *LandingRepository) Replace(ctx context.Context, records []domain.ArticleRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin landing transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err = tx.ExecContext(ctx, `DELETE FROM landing_articles`); err != nil {
		return fmt.Errorf("failed to clear landing table: %w", err)
	}

	insert := `
		INSERT INTO landing_articles (url, category, headline, author, body, published_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (url) DO UPDATE SET
			category = EXCLUDED.category,
			headline = EXCLUDED.headline,
			author = EXCLUDED.author,
			body = EXCLUDED.body,
			published_on = EXCLUDED.published_on
	`

	for _, record := range records {
		if _, err = tx.ExecContext(
			ctx, insert,
			record.URL, record.Category, record.Headline,
			record.Author, record.Body, record.PublishedOn,
		); err != nil {
			return fmt.Errorf("failed to stage record %s: %w", record.URL, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit landing transaction: %w", err)
	}

	return nil
}

// Count returns the number of staged records.
func (r *LandingRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM landing_articles`); err != nil {
		return 0, fmt.Errorf("failed to count landing records: %w", err)
	}
	return count, nil
}
