package handler

import (
	"context"

	"translatebot/internal/command"
	"translatebot/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleCommand handles every slash command through the shared router
func (h *Handler) handleCommand(c tele.Context) error {
	name, args, ok := command.Parse(c.Text(), "/")
	if !ok {
		return nil
	}

	sender := c.Sender()
	if sender != nil && c.Chat() != nil {
		h.roster.Seen(c.Chat().ID, sender)
	}

	req := command.Request{
		Name:      name,
		Args:      args,
		ChannelID: chatKey(c.Chat()),
		CanManage: middleware.CanManage(c),
	}
	if sender != nil {
		req.UserID = userKey(sender)
		req.UserName = displayName(sender)
	}

	h.logger.Info("Command received",
		zap.String("command", name),
		zap.String("user_id", req.UserID),
		zap.String("chat_id", req.ChannelID),
	)

	reply, ok := h.router.Handle(context.Background(), req)
	if !ok {
		return nil
	}
	return c.Reply(reply.Text())
}
