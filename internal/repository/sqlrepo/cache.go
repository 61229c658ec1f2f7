package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"translatebot/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// CacheRepo implements repository.CacheRepository.
// created_at is stored as unix seconds so both backends compare it the same way.
type CacheRepo struct{ *Repo }

// NewCacheRepo creates a new translation cache repository
func NewCacheRepo(db *sql.DB, dialect Dialect) *CacheRepo {
	return &CacheRepo{NewRepo(db, dialect)}
}

// GetFresh returns a cached translation that is not older than notBefore
func (r *CacheRepo) GetFresh(ctx context.Context, key string, notBefore time.Time) (*domain.CacheEntry, error) {
	query, args, err := r.SQ.Select(
		"cache_key",
		"original_text",
		"translated_text",
		"target_lang",
		"source_lang",
		"created_at",
	).
		From("translation_cache").
		Where(sq.Eq{"cache_key": key}).
		Where(sq.GtOrEq{"created_at": notBefore.Unix()}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cache query: %w", err)
	}

	var e domain.CacheEntry
	var created int64
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&e.Key, &e.OriginalText, &e.TranslatedText, &e.TargetLang, &e.SourceLang, &created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.CreatedAt = time.Unix(created, 0)

	return &e, nil
}

// PutEntry stores a translation, refreshing an existing row with the same key
func (r *CacheRepo) PutEntry(ctx context.Context, entry domain.CacheEntry) error {
	query, args, err := r.SQ.Insert("translation_cache").
		Columns("cache_key", "original_text", "translated_text", "target_lang", "source_lang", "created_at").
		Values(entry.Key, entry.OriginalText, entry.TranslatedText, entry.TargetLang, entry.SourceLang, entry.CreatedAt.Unix()).
		Suffix("ON CONFLICT (cache_key) DO UPDATE SET translated_text = excluded.translated_text, created_at = excluded.created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build cache upsert: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}

// DeleteOlderThan removes cache rows created before cutoff
func (r *CacheRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := r.SQ.Delete("translation_cache").
		Where(sq.Lt{"created_at": cutoff.Unix()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build cache purge: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
