package service

import (
	"context"
	"time"

	"translatebot/internal/domain"
	"translatebot/internal/provider"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Translator resolves translations through the cache and falls through to
// the provider. Concurrent requests for the same triple share one call.
type Translator struct {
	cache    *TranslationCache
	provider provider.Provider
	timeout  time.Duration
	logger   *zap.Logger
	inflight singleflight.Group
}

// NewTranslator creates a new translator
func NewTranslator(cache *TranslationCache, p provider.Provider, timeout time.Duration, logger *zap.Logger) *Translator {
	return &Translator{
		cache:    cache,
		provider: p,
		timeout:  timeout,
		logger:   logger,
	}
}

// Translate returns text rendered in targetLang
func (t *Translator) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	if out, ok := t.cache.Get(ctx, text, targetLang, sourceLang); ok {
		return out, nil
	}

	key := domain.CacheKey(text, targetLang, sourceLang)
	v, err, shared := t.inflight.Do(key, func() (any, error) {
		// A flight that finished between our miss and Do has already written back.
		if out, ok := t.cache.Get(ctx, text, targetLang, sourceLang); ok {
			return out, nil
		}

		callCtx, cancel := t.withTimeout(ctx)
		defer cancel()

		out, err := t.provider.Translate(callCtx, text, targetLang, sourceLang)
		if err != nil {
			return "", err
		}
		t.cache.Put(ctx, text, targetLang, sourceLang, out)
		return out, nil
	})
	if err != nil {
		t.logger.Warn("Translation failed",
			zap.String("target_lang", targetLang),
			zap.String("source_lang", sourceLang),
			zap.Error(err),
		)
		return "", err
	}
	if shared {
		t.logger.Debug("Shared in-flight translation", zap.String("cache_key", key))
	}
	return v.(string), nil
}

// Detect returns the language of text as reported by the provider
func (t *Translator) Detect(ctx context.Context, text string) (string, error) {
	callCtx, cancel := t.withTimeout(ctx)
	defer cancel()

	code, err := t.provider.Detect(callCtx, text)
	if err != nil {
		return "", err
	}
	return domain.NormalizeLanguage(code), nil
}

func (t *Translator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.timeout)
}
