package handler

import (
	"context"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText dispatches plain group messages for auto-translation
func (h *Handler) handleText(c tele.Context) error {
	m := c.Message()
	if m == nil || m.Chat == nil || m.Sender == nil {
		return nil
	}

	// Ignore commands (starting with /)
	if strings.HasPrefix(strings.TrimSpace(m.Text), "/") {
		return nil
	}

	h.roster.Seen(m.Chat.ID, m.Sender)

	msg := toMessage(m)
	report := h.dispatcher.Dispatch(context.Background(), msg, h.roster.Members(m.Chat.ID))

	h.logger.Debug("Dispatch finished",
		zap.String("message_id", msg.ID),
		zap.String("stage", string(report.Stage)),
		zap.String("filter_reason", string(report.FilterReason)),
	)
	return nil
}

// handleUserJoined adds new members to the roster
func (h *Handler) handleUserJoined(c tele.Context) error {
	m := c.Message()
	if m == nil || m.Chat == nil {
		return nil
	}
	if m.UserJoined != nil {
		h.roster.Seen(m.Chat.ID, m.UserJoined)
	}
	for i := range m.UsersJoined {
		h.roster.Seen(m.Chat.ID, &m.UsersJoined[i])
	}
	return nil
}

// handleUserLeft removes departed members from the roster
func (h *Handler) handleUserLeft(c tele.Context) error {
	m := c.Message()
	if m == nil || m.Chat == nil || m.UserLeft == nil {
		return nil
	}
	h.roster.Remove(m.Chat.ID, m.UserLeft.ID)
	return nil
}
