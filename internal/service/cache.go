package service

import (
	"context"
	"sync"
	"time"

	"translatebot/internal/domain"
	"translatebot/internal/repository"

	"go.uber.org/zap"
)

type cachedTranslation struct {
	text      string
	createdAt time.Time
}

// TranslationCache is a two-tier cache: an in-process map in front of the
// durable translation_cache table. Both tiers honour domain.CacheRetention.
type TranslationCache struct {
	repo    repository.CacheRepository
	logger  *zap.Logger
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cachedTranslation
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache(repo repository.CacheRepository, logger *zap.Logger) *TranslationCache {
	return &TranslationCache{
		repo:    repo,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]cachedTranslation),
	}
}

// Get returns a fresh translation for the triple
func (c *TranslationCache) Get(ctx context.Context, text, targetLang, sourceLang string) (string, bool) {
	key := domain.CacheKey(text, targetLang, sourceLang)
	now := c.now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && now.Sub(entry.createdAt) < domain.CacheRetention {
		return entry.text, true
	}

	stored, err := c.repo.GetFresh(ctx, key, now.Add(-domain.CacheRetention))
	if err != nil {
		c.logger.Warn("Durable cache lookup failed",
			zap.String("cache_key", key),
			zap.Error(err),
		)
		return "", false
	}
	if stored == nil {
		return "", false
	}

	c.mu.Lock()
	c.entries[key] = cachedTranslation{text: stored.TranslatedText, createdAt: stored.CreatedAt}
	c.mu.Unlock()

	return stored.TranslatedText, true
}

// Put records a successful translation in both tiers
func (c *TranslationCache) Put(ctx context.Context, text, targetLang, sourceLang, translated string) {
	key := domain.CacheKey(text, targetLang, sourceLang)
	now := c.now()

	c.mu.Lock()
	c.entries[key] = cachedTranslation{text: translated, createdAt: now}
	c.mu.Unlock()

	err := c.repo.PutEntry(ctx, domain.CacheEntry{
		Key:            key,
		OriginalText:   text,
		TranslatedText: translated,
		TargetLang:     targetLang,
		SourceLang:     sourceLang,
		CreatedAt:      now,
	})
	if err != nil {
		c.logger.Warn("Durable cache write failed, keeping in-memory entry only",
			zap.String("cache_key", key),
			zap.Error(err),
		)
	}
}

// PurgeExpired drops entries older than the retention window from both tiers
// and returns the number of durable rows removed.
func (c *TranslationCache) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := c.now().Add(-domain.CacheRetention)

	c.mu.Lock()
	for key, entry := range c.entries {
		if entry.createdAt.Before(cutoff) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()

	return c.repo.DeleteOlderThan(ctx, cutoff)
}

// Len returns the number of in-memory entries
func (c *TranslationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
