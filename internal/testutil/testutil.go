package testutil

import (
	"sync"
	"time"

	"translatebot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestMessage creates a human-authored message
func NewTestMessage(id, channelID, authorID, content string) domain.Message {
	return domain.Message{
		ID:        id,
		ChannelID: channelID,
		GuildID:   "guild-1",
		AuthorID:  authorID,
		Content:   content,
	}
}

// NewTestMember creates a human member
func NewTestMember(id string, roles ...string) domain.Member {
	return domain.Member{
		ID:          id,
		DisplayName: "user-" + id,
		Roles:       roles,
	}
}

// FakeClock is a settable clock for time-dependent services
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a clock fixed at start
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
