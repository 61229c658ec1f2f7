package testutil

import (
	"context"
	"time"

	"translatebot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockPreferenceRepository is a mock for PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) GetLanguage(ctx context.Context, userID string) (string, bool, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockPreferenceRepository) UpsertLanguage(ctx context.Context, pref domain.UserPreference) error {
	args := m.Called(ctx, pref)
	return args.Error(0)
}

// MockChannelRepository is a mock for ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) IsEnabled(ctx context.Context, channelID string) (bool, error) {
	args := m.Called(ctx, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChannelRepository) UpsertChannel(ctx context.Context, setting domain.ChannelSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

// MockCacheRepository is a mock for CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetFresh(ctx context.Context, key string, notBefore time.Time) (*domain.CacheEntry, error) {
	args := m.Called(ctx, key, notBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CacheEntry), args.Error(1)
}

func (m *MockCacheRepository) PutEntry(ctx context.Context, entry domain.CacheEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockProvider is a mock for provider.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	args := m.Called(ctx, text, targetLang, sourceLang)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Detect(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}
