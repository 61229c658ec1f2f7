package service

import (
	"sync"
	"time"
)

// MessageStaleAfter is how long a message id is remembered
const MessageStaleAfter = 5 * time.Minute

// CooldownTracker rate limits manual commands per user and automatic
// translation per message id. State is in memory only.
type CooldownTracker struct {
	mu            sync.Mutex
	userWindow    time.Duration
	messageWindow time.Duration
	users         map[string]time.Time
	messages      map[string]time.Time
	now           func() time.Time
}

// NewCooldownTracker creates a tracker with the given windows
func NewCooldownTracker(userWindow, messageWindow time.Duration) *CooldownTracker {
	return &CooldownTracker{
		userWindow:    userWindow,
		messageWindow: messageWindow,
		users:         make(map[string]time.Time),
		messages:      make(map[string]time.Time),
		now:           time.Now,
	}
}

// CheckUserCooldown returns true and restarts the window when the user's last
// accepted action is older than the user window.
func (t *CooldownTracker) CheckUserCooldown(userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if last, ok := t.users[userID]; ok && now.Sub(last) <= t.userWindow {
		return false
	}
	t.users[userID] = now
	return true
}

// CheckMessageCooldown returns true and records the message when it was not
// accepted within the message window.
func (t *CooldownTracker) CheckMessageCooldown(messageID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.sweepMessagesLocked(now)

	if last, ok := t.messages[messageID]; ok && now.Sub(last) < t.messageWindow {
		return false
	}
	t.messages[messageID] = now
	return true
}

// Sweep evicts stale entries and returns how many user and message entries went
func (t *CooldownTracker) Sweep() (users, messages int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for id, last := range t.users {
		if now.Sub(last) > t.userWindow {
			delete(t.users, id)
			users++
		}
	}
	messages = t.sweepMessagesLocked(now)
	return users, messages
}

func (t *CooldownTracker) sweepMessagesLocked(now time.Time) int {
	removed := 0
	for id, last := range t.messages {
		if now.Sub(last) > MessageStaleAfter {
			delete(t.messages, id)
			removed++
		}
	}
	return removed
}
