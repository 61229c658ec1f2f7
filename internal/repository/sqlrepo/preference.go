package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"translatebot/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// PreferenceRepo implements repository.PreferenceRepository
type PreferenceRepo struct{ *Repo }

// NewPreferenceRepo creates a new preference repository
func NewPreferenceRepo(db *sql.DB, dialect Dialect) *PreferenceRepo {
	return &PreferenceRepo{NewRepo(db, dialect)}
}

// GetLanguage returns the user's stored language code
func (r *PreferenceRepo) GetLanguage(ctx context.Context, userID string) (string, bool, error) {
	query, args, err := r.SQ.Select("language_code").
		From("user_preferences").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build preference query: %w", err)
	}

	var code sql.NullString
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !code.Valid || code.String == "" {
		return "", false, nil
	}

	return code.String, true, nil
}

// UpsertLanguage inserts or overwrites the user's language and timestamp
func (r *PreferenceRepo) UpsertLanguage(ctx context.Context, pref domain.UserPreference) error {
	query, args, err := r.SQ.Insert("user_preferences").
		Columns("user_id", "language_code", "updated_at").
		Values(pref.UserID, pref.LanguageCode, pref.UpdatedAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET language_code = excluded.language_code, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build preference upsert: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}
