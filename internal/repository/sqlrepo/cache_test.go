package sqlrepo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"translatebot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var cacheColumns = []string{"cache_key", "original_text", "translated_text", "target_lang", "source_lang", "created_at"}

func TestCacheRepo_GetFresh(t *testing.T) {
	notBefore := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	created := notBefore.Add(time.Hour)

	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name:     "fresh entry",
			mockRows: sqlmock.NewRows(cacheColumns).AddRow("k1", "Hello", "Hola", "es", "en", created.Unix()),
		},
		{
			name:        "missing or stale",
			mockRows:    sqlmock.NewRows(cacheColumns),
			expectedNil: true,
		},
		{
			name:          "query error",
			mockError:     fmt.Errorf("query error"),
			expectedNil:   true,
			expectedError: true,
		},
		{
			name:          "scan error",
			mockRows:      sqlmock.NewRows(cacheColumns).AddRow("k1", "Hello", "Hola", "es", "en", "invalid"),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewCacheRepo(db, SQLite)

			query := "SELECT cache_key, original_text, translated_text, target_lang, source_lang, created_at FROM translation_cache WHERE cache_key = \\? AND created_at >= \\? LIMIT 1"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs("k1", notBefore.Unix()).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs("k1", notBefore.Unix()).WillReturnRows(tt.mockRows)
			}

			entry, err := repo.GetFresh(context.Background(), "k1", notBefore)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, entry)
			} else {
				assert.NotNil(t, entry)
				assert.Equal(t, "Hola", entry.TranslatedText)
				assert.Equal(t, created.Unix(), entry.CreatedAt.Unix())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCacheRepo_PutEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCacheRepo(db, Postgres)
	entry := domain.CacheEntry{
		Key:            "k1",
		OriginalText:   "Hello",
		TranslatedText: "Hola",
		TargetLang:     "es",
		SourceLang:     "en",
		CreatedAt:      time.Unix(1717200000, 0),
	}

	mock.ExpectExec("INSERT INTO translation_cache .* ON CONFLICT \\(cache_key\\) DO UPDATE").
		WithArgs("k1", "Hello", "Hola", "es", "en", int64(1717200000)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.PutEntry(context.Background(), entry)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepo_DeleteOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewCacheRepo(db, SQLite)
	cutoff := time.Unix(1717200000, 0)

	mock.ExpectExec("DELETE FROM translation_cache WHERE created_at < \\?").
		WithArgs(cutoff.Unix()).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.DeleteOlderThan(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
