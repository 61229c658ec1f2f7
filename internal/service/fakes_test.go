package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"translatebot/internal/domain"
	"translatebot/internal/provider"
)

type memPreferences struct {
	mu    sync.Mutex
	langs map[string]string
}

func newMemPreferences(initial map[string]string) *memPreferences {
	m := &memPreferences{langs: make(map[string]string)}
	for k, v := range initial {
		m.langs[k] = v
	}
	return m
}

func (m *memPreferences) GetLanguage(ctx context.Context, userID string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.langs[userID]
	return code, ok, nil
}

func (m *memPreferences) UpsertLanguage(ctx context.Context, pref domain.UserPreference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.langs[pref.UserID] = pref.LanguageCode
	return nil
}

type memChannels struct {
	mu      sync.Mutex
	enabled map[string]bool
}

func newMemChannels(enabled ...string) *memChannels {
	m := &memChannels{enabled: make(map[string]bool)}
	for _, id := range enabled {
		m.enabled[id] = true
	}
	return m
}

func (m *memChannels) IsEnabled(ctx context.Context, channelID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled[channelID], nil
}

func (m *memChannels) UpsertChannel(ctx context.Context, setting domain.ChannelSetting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled[setting.ChannelID] = setting.Enabled
	return nil
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]domain.CacheEntry
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]domain.CacheEntry)}
}

func (m *memCache) GetFresh(ctx context.Context, key string, notBefore time.Time) (*domain.CacheEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok || e.CreatedAt.Before(notBefore) {
		return nil, nil
	}
	return &e, nil
}

func (m *memCache) PutEntry(ctx context.Context, entry domain.CacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Key] = entry
	return nil
}

func (m *memCache) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, e := range m.entries {
		if e.CreatedAt.Before(cutoff) {
			delete(m.entries, k)
			n++
		}
	}
	return n, nil
}

// fakeProvider renders "<target>:<text>" and counts calls per target language.
type fakeProvider struct {
	detected  string
	detectErr error
	failFor   map[string]bool
	panicFor  map[string]bool
	delay     time.Duration

	mu    sync.Mutex
	calls map[string]int
	total atomic.Int32
}

func newFakeProvider(detected string) *fakeProvider {
	return &fakeProvider{
		detected: detected,
		failFor:  map[string]bool{},
		panicFor: map[string]bool{},
		calls:    map[string]int{},
	}
}

func (p *fakeProvider) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	p.total.Add(1)
	p.mu.Lock()
	p.calls[targetLang]++
	p.mu.Unlock()

	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.panicFor[targetLang] {
		panic("provider exploded")
	}
	if p.failFor[targetLang] {
		return "", &provider.Error{Kind: provider.KindNetwork, Op: "translate", Err: errors.New("connection reset")}
	}
	return targetLang + ":" + text, nil
}

func (p *fakeProvider) Detect(ctx context.Context, text string) (string, error) {
	if p.detectErr != nil {
		return "", p.detectErr
	}
	return p.detected, nil
}

func (p *fakeProvider) callsFor(lang string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[lang]
}

type recordingDeliverer struct {
	mu        sync.Mutex
	delivered []domain.GroupResult
	failFor   map[string]bool
}

func (r *recordingDeliverer) Deliver(ctx context.Context, msg domain.Message, result domain.GroupResult) error {
	if r.failFor[result.Language] {
		return errors.New("send failed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delivered = append(r.delivered, result)
	return nil
}

func (r *recordingDeliverer) languages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.delivered))
	for _, d := range r.delivered {
		out = append(out, d.Language)
	}
	return out
}
