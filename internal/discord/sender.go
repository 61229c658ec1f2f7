package discord

import (
	"context"
	"fmt"

	"translatebot/internal/domain"
	"translatebot/internal/render"
	"translatebot/internal/service"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	colorInfo  = 0x3498db
	colorError = 0xe74c3c
)

// Sender delivers group translations as embed replies
type Sender struct {
	session *discordgo.Session
	logger  *zap.Logger
}

var _ service.Deliverer = (*Sender)(nil)

// NewSender creates a new sender
func NewSender(session *discordgo.Session, logger *zap.Logger) *Sender {
	return &Sender{session: session, logger: logger}
}

// Deliver replies to the original message, mentioning only the group's members
func (s *Sender) Deliver(ctx context.Context, msg domain.Message, res domain.GroupResult) error {
	if _, err := s.session.ChannelMessageSendComplex(msg.ChannelID, buildDelivery(msg, res), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send translation: %w", err)
	}
	s.logger.Debug("Translation delivered",
		zap.String("channel_id", msg.ChannelID),
		zap.String("language", res.Language),
		zap.Int("recipients", len(res.Recipients)),
	)
	return nil
}

func buildDelivery(msg domain.Message, res domain.GroupResult) *discordgo.MessageSend {
	ids := make([]string, 0, len(res.Recipients))
	mentions := make([]string, 0, len(res.Recipients))
	for _, m := range res.Recipients {
		ids = append(ids, m.ID)
		mentions = append(mentions, "<@"+m.ID+">")
	}

	content := ""
	if header := render.MentionHeader(mentions); header != "" {
		content = "**" + header + "**"
	}

	return &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{toEmbed(render.GroupTranslation(msg.AuthorName, msg.Content, res))},
		Reference: &discordgo.MessageReference{
			MessageID: msg.ID,
			ChannelID: msg.ChannelID,
			GuildID:   msg.GuildID,
		},
		AllowedMentions: &discordgo.MessageAllowedMentions{Users: ids},
	}
}

func toEmbed(r render.Reply) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Description: r.Body,
		Color:       colorInfo,
	}
	if r.Error {
		e.Color = colorError
	}
	if r.Title != "" {
		e.Title = r.Title
	}
	for _, f := range r.Fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value})
	}
	if r.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: r.Footer}
	}
	return e
}
