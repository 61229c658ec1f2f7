package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// CacheRetention is how long a cached translation stays valid
const CacheRetention = 24 * time.Hour

// CacheEntry is a stored translation of one (text, target, source) triple
type CacheEntry struct {
	Key            string
	OriginalText   string
	TranslatedText string
	TargetLang     string
	SourceLang     string
	CreatedAt      time.Time
}

// Expired reports whether the entry is older than the retention window at now
func (e CacheEntry) Expired(now time.Time) bool {
	return now.Sub(e.CreatedAt) >= CacheRetention
}

// CacheKey returns the hex sha256 of the trimmed text and the language pair.
// Identical text for identical language pairs shares a key.
func CacheKey(text, targetLang, sourceLang string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text) + ":" + targetLang + ":" + sourceLang))
	return hex.EncodeToString(sum[:])
}
