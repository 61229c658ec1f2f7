package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const canManageKey = "can_manage"

// ChatAdmin creates middleware that records whether the sender administers
// the chat. Private chats are always managed by their only user.
func ChatAdmin(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat, sender := c.Chat(), c.Sender()
			if chat == nil || sender == nil {
				return nil
			}

			if chat.Type == tele.ChatPrivate {
				c.Set(canManageKey, true)
				return next(c)
			}

			member, err := c.Bot().ChatMemberOf(chat, sender)
			if err != nil {
				logger.Error("Failed to check chat membership in middleware",
					zap.Int64("chat_id", chat.ID),
					zap.Int64("user_id", sender.ID),
					zap.Error(err),
				)
				return c.Send("Something went wrong. Please try again later.")
			}

			c.Set(canManageKey, IsManager(member.Role))
			return next(c)
		}
	}
}

// IsManager reports whether a member status may change chat settings
func IsManager(role tele.MemberStatus) bool {
	return role == tele.Creator || role == tele.Administrator
}

// CanManage returns what ChatAdmin recorded for this update
func CanManage(c tele.Context) bool {
	v, _ := c.Get(canManageKey).(bool)
	return v
}
