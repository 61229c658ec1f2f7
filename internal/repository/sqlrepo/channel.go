package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"translatebot/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

// ChannelRepo implements repository.ChannelRepository
type ChannelRepo struct{ *Repo }

// NewChannelRepo creates a new channel settings repository
func NewChannelRepo(db *sql.DB, dialect Dialect) *ChannelRepo {
	return &ChannelRepo{NewRepo(db, dialect)}
}

// IsEnabled checks if auto-translate is enabled for the channel
func (r *ChannelRepo) IsEnabled(ctx context.Context, channelID string) (bool, error) {
	query, args, err := r.SQ.Select("enabled").
		From("channel_settings").
		Where(sq.Eq{"channel_id": channelID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build channel query: %w", err)
	}

	var enabled bool
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		// Channel was never configured
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return enabled, nil
}

// UpsertChannel inserts or overwrites the channel flag.
// created_at keeps its first value; guild_id is only overwritten when known.
func (r *ChannelRepo) UpsertChannel(ctx context.Context, setting domain.ChannelSetting) error {
	var guildID any
	if setting.GuildID != "" {
		guildID = setting.GuildID
	}

	query, args, err := r.SQ.Insert("channel_settings").
		Columns("channel_id", "enabled", "guild_id", "created_at").
		Values(setting.ChannelID, setting.Enabled, guildID, setting.CreatedAt).
		Suffix("ON CONFLICT (channel_id) DO UPDATE SET enabled = excluded.enabled, " +
			"guild_id = COALESCE(excluded.guild_id, channel_settings.guild_id)").
		ToSql()
	if err != nil {
		return fmt.Errorf("build channel upsert: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query, args...)
	return err
}
