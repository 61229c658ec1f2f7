package repository

import (
	"context"
	"time"

	"translatebot/internal/domain"
)

// PreferenceRepository defines user preference data operations
type PreferenceRepository interface {
	// GetLanguage returns the stored language code; ok is false when the user has none.
	GetLanguage(ctx context.Context, userID string) (code string, ok bool, err error)
	UpsertLanguage(ctx context.Context, pref domain.UserPreference) error
}

// ChannelRepository defines channel setting data operations
type ChannelRepository interface {
	// IsEnabled returns false with no error when the channel has no row.
	IsEnabled(ctx context.Context, channelID string) (bool, error)
	UpsertChannel(ctx context.Context, setting domain.ChannelSetting) error
}

// CacheRepository defines durable translation cache operations
type CacheRepository interface {
	// GetFresh returns the entry for key created at or after notBefore.
	GetFresh(ctx context.Context, key string, notBefore time.Time) (*domain.CacheEntry, error)
	PutEntry(ctx context.Context, entry domain.CacheEntry) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
