package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// attributeChangedPredicate compares the tracked attributes of a staged
// record (l) against a dimension version (v). IS DISTINCT FROM treats NULL as
// a comparable value, so a field appearing or disappearing counts as a change.
const attributeChangedPredicate = `
		v.category IS DISTINCT FROM l.category
		OR v.headline IS DISTINCT FROM l.headline
		OR v.author IS DISTINCT FROM l.author
		OR v.body IS DISTINCT FROM l.body`

// expireChangedQuery closes the current version of every staged URL whose
// tracked attributes differ from the staged record.
const expireChangedQuery = `
	UPDATE article_versions AS v
	SET valid_to = NOW(), is_current = FALSE
	FROM landing_articles AS l
	WHERE v.url = l.url
	  AND v.is_current
	  AND (` + attributeChangedPredicate + `)`

// insertVersionsQuery inserts a new current version for every staged URL that
// has no current version. Because expiry runs first inside the same
// transaction, this covers both brand-new URLs and changed ones.
const insertVersionsQuery = `
	INSERT INTO article_versions (url, category, headline, author, body, valid_from, valid_to, is_current)
	SELECT l.url, l.category, l.headline, l.author, l.body, NOW(), NULL, TRUE
	FROM landing_articles AS l
	LEFT JOIN article_versions AS v
		ON v.url = l.url AND v.is_current
	WHERE v.url IS NULL`

// insertBridgeQuery links every current version without a bridge entry to the
// calendar date its staged record was observed with. Versions stay in the
// bridge after expiry; a version is bridged exactly once. Records whose date
// segment failed to parse are skipped.
const insertBridgeQuery = `
	INSERT INTO article_facts (version_id, published_on)
	SELECT v.id, l.published_on
	FROM article_versions AS v
	INNER JOIN landing_articles AS l ON l.url = v.url
	WHERE v.is_current
	  AND l.published_on IS NOT NULL
	  AND NOT EXISTS (
		SELECT 1 FROM article_facts AS f WHERE f.version_id = v.id
	  )`

// currentCountQuery counts current dimension rows.
const currentCountQuery = `SELECT COUNT(*) FROM article_versions WHERE is_current`

// MergeResult summarizes what a merge transaction did. Inserted is the number
// of new versions written, which counts a changed URL even when the expiry of
// its old version leaves the current-row total unchanged; CurrentDelta is the
// plain before/after difference of current rows.
type MergeResult struct {
	Expired      int64
	Inserted     int64
	Bridged      int64
	CurrentDelta int64
}

// WarehouseRepository is the sole writer of the article dimension and the
// fact bridge. It reconciles the staged landing snapshot against the
// versioned dimension with slowly-changing-dimension (Type 2) semantics.
type WarehouseRepository struct {
	db *sqlx.DB
}

// NewWarehouseRepository creates a new warehouse repository.
func NewWarehouseRepository(db *sqlx.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

// Merge runs the SCD2 reconciliation as a single transaction: expire changed
// current versions, insert new versions for new or changed URLs, and append
// bridge rows for current versions that have none. Re-running with an
// unchanged snapshot is a no-op. Any failure rolls back all three steps.
func (r *WarehouseRepository) Merge(ctx context.Context) (*MergeResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin merge transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var initial int64
	if err = tx.GetContext(ctx, &initial, currentCountQuery); err != nil {
		return nil, fmt.Errorf("failed to count current versions: %w", err)
	}

	result := &MergeResult{}

	expired, err := tx.ExecContext(ctx, expireChangedQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to expire changed versions: %w", err)
	}
	result.Expired, _ = expired.RowsAffected()

	inserted, err := tx.ExecContext(ctx, insertVersionsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to insert new versions: %w", err)
	}
	result.Inserted, _ = inserted.RowsAffected()

	bridged, err := tx.ExecContext(ctx, insertBridgeQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bridge rows: %w", err)
	}
	result.Bridged, _ = bridged.RowsAffected()

	var final int64
	if err = tx.GetContext(ctx, &final, currentCountQuery); err != nil {
		return nil, fmt.Errorf("failed to count current versions: %w", err)
	}
	result.CurrentDelta = final - initial

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit merge transaction: %w", err)
	}

	return result, nil
}

// HasData reports whether the dimension holds any rows. The scheduler uses
// this to pick the first-run page budget.
func (r *WarehouseRepository) HasData(ctx context.Context) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM article_versions)`
	if err := r.db.GetContext(ctx, &exists, query); err != nil {
		return false, fmt.Errorf("failed to check for dimension data: %w", err)
	}
	return exists, nil
}

// MostRecentURL returns the URL of the newest dimension version, the
// walker's stop sentinel for steady-state runs. Returns an empty string when
// the dimension is empty.
func (r *WarehouseRepository) MostRecentURL(ctx context.Context) (string, error) {
	var url string
	query := `SELECT url FROM article_versions ORDER BY id DESC LIMIT 1`
	err := r.db.GetContext(ctx, &url, query)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load most recent URL: %w", err)
	}
	return url, nil
}
