package handler

import (
	"context"
	"fmt"
	"strconv"

	"translatebot/internal/domain"
	"translatebot/internal/render"
	"translatebot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Sender delivers group translations as replies in the source chat
type Sender struct {
	bot    *tele.Bot
	logger *zap.Logger
}

var _ service.Deliverer = (*Sender)(nil)

// NewSender creates a new sender
func NewSender(bot *tele.Bot, logger *zap.Logger) *Sender {
	return &Sender{bot: bot, logger: logger}
}

// Deliver replies to the original message with one group's translation
func (s *Sender) Deliver(ctx context.Context, msg domain.Message, res domain.GroupResult) error {
	chatID, err := strconv.ParseInt(msg.ChannelID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", msg.ChannelID, err)
	}
	messageID, err := strconv.Atoi(msg.ID)
	if err != nil {
		return fmt.Errorf("invalid message id %q: %w", msg.ID, err)
	}

	opts := &tele.SendOptions{
		ReplyTo:               &tele.Message{ID: messageID, Chat: &tele.Chat{ID: chatID}},
		DisableWebPagePreview: true,
	}
	if _, err := s.bot.Send(tele.ChatID(chatID), formatDelivery(msg, res), opts); err != nil {
		return fmt.Errorf("failed to send translation: %w", err)
	}

	s.logger.Debug("Translation delivered",
		zap.Int64("chat_id", chatID),
		zap.String("language", res.Language),
		zap.Int("recipients", len(res.Recipients)),
	)
	return nil
}

func formatDelivery(msg domain.Message, res domain.GroupResult) string {
	mentions := make([]string, 0, len(res.Recipients))
	for _, m := range res.Recipients {
		mentions = append(mentions, m.DisplayName)
	}

	reply := render.GroupTranslation(msg.AuthorName, msg.Content, res)
	reply.Footer = ""

	header := render.MentionHeader(mentions)
	if header == "" {
		return reply.Text()
	}
	return header + "\n\n" + reply.Text()
}
