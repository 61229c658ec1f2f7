package domain

import "time"

// UserPreference is a user's preferred target language
type UserPreference struct {
	UserID       string
	LanguageCode string
	UpdatedAt    time.Time
}

// ChannelSetting holds the auto-translate flag of a channel.
// A channel without a row is disabled.
type ChannelSetting struct {
	ChannelID string
	Enabled   bool
	GuildID   string
	CreatedAt time.Time
}
