// Package command implements the chat commands shared by every platform
// adapter. Adapters parse a message into a Request and render the Reply.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"translatebot/internal/domain"
	"translatebot/internal/render"
	"translatebot/internal/service"

	"go.uber.org/zap"
)

// Request is one parsed command invocation
type Request struct {
	Name      string
	Args      string
	UserID    string
	UserName  string
	ChannelID string
	GuildID   string
	// CanManage is true when the caller may toggle auto-translate here
	CanManage bool
}

// Parse splits "!translate es hi" into ("translate", "es hi").
// A "@botname" suffix on the command, as Telegram sends in groups, is dropped.
func Parse(text, prefix string) (name, args string, ok bool) {
	text = strings.TrimSpace(text)
	if prefix == "" || !strings.HasPrefix(text, prefix) {
		return "", "", false
	}
	text = strings.TrimPrefix(text, prefix)

	name, args, _ = strings.Cut(text, " ")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(args), true
}

// Router dispatches commands to the services
type Router struct {
	settings  *service.SettingsService
	translate *service.TranslateService
	prefix    string
	latency   func() time.Duration
	logger    *zap.Logger
}

// NewRouter creates a new command router
func NewRouter(
	settings *service.SettingsService,
	translate *service.TranslateService,
	prefix string,
	logger *zap.Logger,
) *Router {
	return &Router{
		settings:  settings,
		translate: translate,
		prefix:    prefix,
		logger:    logger,
	}
}

// WithLatency sets the source for the ping command's latency figure
func (r *Router) WithLatency(f func() time.Duration) *Router {
	r.latency = f
	return r
}

// Prefix returns the command prefix
func (r *Router) Prefix() string {
	return r.prefix
}

// Handle runs the command; ok is false for unknown commands
func (r *Router) Handle(ctx context.Context, req Request) (reply render.Reply, ok bool) {
	switch req.Name {
	case "help", "start":
		return render.Help(r.prefix), true
	case "langs":
		return render.Languages(r.prefix), true
	case "ping":
		return r.ping(), true
	case "mylang":
		return r.myLang(ctx, req), true
	case "auto":
		return r.auto(ctx, req), true
	case "translate":
		return r.translateText(ctx, req), true
	default:
		return render.Reply{}, false
	}
}

func (r *Router) ping() render.Reply {
	reply := render.Reply{
		Title:  "🏓 Pong!",
		Fields: []render.Field{{Name: "Status", Value: "✅ Online"}},
	}
	if r.latency != nil {
		reply.Fields = append([]render.Field{{
			Name:  "Latency",
			Value: fmt.Sprintf("%dms", r.latency().Milliseconds()),
		}}, reply.Fields...)
	}
	return reply
}

func (r *Router) myLang(ctx context.Context, req Request) render.Reply {
	code := strings.TrimSpace(req.Args)
	if code == "" {
		return render.CurrentLanguage(r.settings.GetUserLanguage(ctx, req.UserID), r.prefix)
	}

	if err := r.settings.SetUserLanguage(ctx, req.UserID, code); err != nil {
		return render.Failure("Invalid Language", fmt.Sprintf("Use `%slangs` to see available languages", r.prefix))
	}

	r.logger.Info("User language set",
		zap.String("user_id", req.UserID),
		zap.String("language", domain.NormalizeLanguage(code)),
	)
	return render.LanguageSet(domain.NormalizeLanguage(code))
}

func (r *Router) auto(ctx context.Context, req Request) render.Reply {
	if !req.CanManage {
		return render.Failure("Permission Denied", "You need permission to manage this channel.")
	}

	switch strings.ToLower(strings.TrimSpace(req.Args)) {
	case "":
		return render.AutoStatus(r.settings.IsChannelEnabled(ctx, req.ChannelID), r.prefix)
	case "enable":
		r.settings.SetChannelEnabled(ctx, req.ChannelID, true, req.GuildID)
		r.logger.Info("Auto-translate enabled", zap.String("channel_id", req.ChannelID))
		return render.AutoChanged(true, r.prefix)
	case "disable":
		r.settings.SetChannelEnabled(ctx, req.ChannelID, false, req.GuildID)
		r.logger.Info("Auto-translate disabled", zap.String("channel_id", req.ChannelID))
		return render.AutoChanged(false, r.prefix)
	default:
		return render.Failure("Invalid Action", fmt.Sprintf("Use: `%[1]sauto enable` or `%[1]sauto disable`", r.prefix))
	}
}

func (r *Router) translateText(ctx context.Context, req Request) render.Reply {
	target, text, _ := strings.Cut(strings.TrimSpace(req.Args), " ")
	text = strings.TrimSpace(text)
	if target == "" || text == "" {
		return render.Failure("Usage", fmt.Sprintf("`%[1]stranslate [language] [text]`\nExample: `%[1]stranslate vi Hello everyone!`", r.prefix))
	}

	res, err := r.translate.TranslateManual(ctx, req.UserID, target, text)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidInput):
		return render.Failure("Invalid Language", fmt.Sprintf("Use `%slangs` to see available languages", r.prefix))
	case errors.Is(err, domain.ErrRateLimited):
		return render.Failure("Slow Down", "Please wait a few seconds before translating again.")
	default:
		r.logger.Warn("Manual translation failed",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
		return render.Failure("Translation Failed", render.TranslationFailed)
	}

	reply := render.Translation("", res.Original, res.Translated, res.SourceLanguage, res.TargetLanguage)
	if req.UserName != "" {
		reply.Title = "Translation by " + req.UserName
	}
	return reply
}
