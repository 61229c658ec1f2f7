package handler

import (
	"strconv"
	"strings"
	"unicode"

	"translatebot/internal/command"
	"translatebot/internal/domain"
	"translatebot/internal/middleware"
	"translatebot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all Telegram bot interactions
type Handler struct {
	bot        *tele.Bot
	router     *command.Router
	dispatcher *service.Dispatcher
	roster     *Roster
	logger     *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	router *command.Router,
	dispatcher *service.Dispatcher,
	roster *Roster,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		router:     router,
		dispatcher: dispatcher,
		roster:     roster,
		logger:     logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	for _, name := range []string{"/start", "/help", "/langs", "/ping", "/mylang", "/translate"} {
		h.bot.Handle(name, h.handleCommand)
	}

	admin := h.bot.Group()
	admin.Use(middleware.ChatAdmin(h.logger))
	admin.Handle("/auto", h.handleCommand)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Membership changes feed the roster
	h.bot.Handle(tele.OnUserJoined, h.handleUserJoined)
	h.bot.Handle(tele.OnUserLeft, h.handleUserLeft)
}

// cleanText removes non-printable characters but keeps line breaks
func cleanText(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(text))
}

func chatKey(chat *tele.Chat) string {
	return strconv.FormatInt(chat.ID, 10)
}

func userKey(u *tele.User) string {
	return strconv.FormatInt(u.ID, 10)
}

// displayName prefers the @username so replies can mention the member
func displayName(u *tele.User) string {
	if u.Username != "" {
		return "@" + u.Username
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return userKey(u)
	}
	return name
}

func toMember(u *tele.User) domain.Member {
	return domain.Member{
		ID:          userKey(u),
		DisplayName: displayName(u),
		Bot:         u.IsBot,
	}
}

func toMessage(m *tele.Message) domain.Message {
	msg := domain.Message{
		ID:        strconv.Itoa(m.ID),
		ChannelID: chatKey(m.Chat),
		Content:   cleanText(m.Text),
	}
	if m.Sender != nil {
		msg.AuthorID = userKey(m.Sender)
		msg.AuthorName = displayName(m.Sender)
		msg.AuthorBot = m.Sender.IsBot
	}
	return msg
}
