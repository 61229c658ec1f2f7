// Package discord adapts the dispatcher and command router to a Discord
// gateway session.
package discord

import (
	"context"
	"fmt"

	"translatebot/internal/command"
	"translatebot/internal/domain"
	"translatebot/internal/service"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Intents needed to read messages and resolve channel members
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent

// NewSession creates a gateway session for token
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	s.Identify.Intents = Intents
	s.State.TrackMembers = true
	s.State.TrackRoles = true
	return s, nil
}

// Bot handles gateway events
type Bot struct {
	session    *discordgo.Session
	router     *command.Router
	dispatcher *service.Dispatcher
	logger     *zap.Logger
}

// NewBot creates a new bot
func NewBot(session *discordgo.Session, router *command.Router, dispatcher *service.Dispatcher, logger *zap.Logger) *Bot {
	return &Bot{
		session:    session,
		router:     router,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers registers gateway event handlers
func (b *Bot) RegisterHandlers() {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("Discord session ready",
		zap.String("user", r.User.Username),
		zap.Int("guilds", len(r.Guilds)),
	)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || (s.State.User != nil && m.Author.ID == s.State.User.ID) {
		return
	}
	// Direct messages have no channel members to translate for.
	if m.GuildID == "" {
		return
	}

	ctx := context.Background()

	if name, args, ok := command.Parse(m.Content, b.router.Prefix()); ok {
		b.handleCommand(ctx, s, m, name, args)
		return
	}

	msg := domain.Message{
		ID:         m.ID,
		ChannelID:  m.ChannelID,
		GuildID:    m.GuildID,
		AuthorID:   m.Author.ID,
		AuthorName: authorName(m),
		AuthorBot:  m.Author.Bot,
		Content:    m.Content,
	}

	report := b.dispatcher.Dispatch(ctx, msg, b.channelMembers(s, m.GuildID, m.ChannelID))
	b.logger.Debug("Dispatch finished",
		zap.String("message_id", m.ID),
		zap.String("stage", string(report.Stage)),
		zap.String("filter_reason", string(report.FilterReason)),
	)
}

func (b *Bot) handleCommand(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, name, args string) {
	if m.Author.Bot {
		return
	}

	perms, err := s.State.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		b.logger.Warn("Failed to resolve permissions",
			zap.String("user_id", m.Author.ID),
			zap.String("channel_id", m.ChannelID),
			zap.Error(err),
		)
	}

	reply, ok := b.router.Handle(ctx, command.Request{
		Name:      name,
		Args:      args,
		UserID:    m.Author.ID,
		UserName:  authorName(m),
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		CanManage: canManage(perms),
	})
	if !ok {
		return
	}

	if _, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{toEmbed(reply)},
	}, discordgo.WithContext(ctx)); err != nil {
		b.logger.Error("Failed to send command reply",
			zap.String("command", name),
			zap.String("channel_id", m.ChannelID),
			zap.Error(err),
		)
	}
}

// channelMembers lists the cached guild members able to read the channel
func (b *Bot) channelMembers(s *discordgo.Session, guildID, channelID string) []domain.Member {
	guild, err := s.State.Guild(guildID)
	if err != nil {
		b.logger.Warn("Guild not in state", zap.String("guild_id", guildID), zap.Error(err))
		return nil
	}

	out := make([]domain.Member, 0, len(guild.Members))
	for _, gm := range guild.Members {
		if gm.User == nil {
			continue
		}
		perms, err := s.State.UserChannelPermissions(gm.User.ID, channelID)
		if err != nil || perms&discordgo.PermissionViewChannel == 0 {
			continue
		}
		out = append(out, toMember(gm, b.roleNames(s, guildID, gm.Roles)))
	}
	return out
}

// roleNames returns role ids followed by their names, so either can key
// the role language map.
func (b *Bot) roleNames(s *discordgo.Session, guildID string, roleIDs []string) []string {
	out := make([]string, 0, len(roleIDs)*2)
	for _, id := range roleIDs {
		out = append(out, id)
		if role, err := s.State.Role(guildID, id); err == nil {
			out = append(out, role.Name)
		}
	}
	return out
}

func canManage(perms int64) bool {
	return perms&(discordgo.PermissionManageChannels|discordgo.PermissionAdministrator) != 0
}

func memberName(gm *discordgo.Member) string {
	if gm.Nick != "" {
		return gm.Nick
	}
	if gm.User.GlobalName != "" {
		return gm.User.GlobalName
	}
	return gm.User.Username
}

func authorName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}

func toMember(gm *discordgo.Member, roles []string) domain.Member {
	return domain.Member{
		ID:          gm.User.ID,
		DisplayName: memberName(gm),
		Bot:         gm.User.Bot,
		Roles:       roles,
	}
}
