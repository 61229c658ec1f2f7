package handler

import (
	"sync"

	"translatebot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type chatRoster struct {
	order   []int64
	members map[int64]domain.Member
}

// Roster remembers the members seen in each chat, since the Bot API cannot
// list them. Members keep the order in which they were first seen.
type Roster struct {
	mu    sync.RWMutex
	chats map[int64]*chatRoster
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{chats: make(map[int64]*chatRoster)}
}

// Seen records or refreshes a member of chatID
func (r *Roster) Seen(chatID int64, u *tele.User) {
	if u == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[chatID]
	if !ok {
		chat = &chatRoster{members: make(map[int64]domain.Member)}
		r.chats[chatID] = chat
	}
	if _, known := chat.members[u.ID]; !known {
		chat.order = append(chat.order, u.ID)
	}
	chat.members[u.ID] = toMember(u)
}

// Remove forgets a member of chatID
func (r *Roster) Remove(chatID, userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	chat, ok := r.chats[chatID]
	if !ok {
		return
	}
	if _, known := chat.members[userID]; !known {
		return
	}
	delete(chat.members, userID)
	for i, id := range chat.order {
		if id == userID {
			chat.order = append(chat.order[:i], chat.order[i+1:]...)
			break
		}
	}
}

// Members returns a snapshot of the members of chatID
func (r *Roster) Members(chatID int64) []domain.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chat, ok := r.chats[chatID]
	if !ok {
		return nil
	}
	out := make([]domain.Member, 0, len(chat.order))
	for _, id := range chat.order {
		out = append(out, chat.members[id])
	}
	return out
}
