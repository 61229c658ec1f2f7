package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"translatebot/internal/command"
	"translatebot/internal/config"
	"translatebot/internal/discord"
	"translatebot/internal/handler"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	cooldownSweepSchedule = "@every 1m"
	cachePurgeSchedule    = "@every 6h"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot",
		Long: `Connect to the configured chat platform (CHAT_PLATFORM) and translate
messages in enabled channels until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return runBot(cmd.Context(), cfg, logger)
		},
	}
}

func runBot(parent context.Context, cfg *config.Config, logger *zap.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting translation bot", zap.String("platform", cfg.Platform))

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	scheduler, err := startMaintenance(ctx, a)
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	switch cfg.Platform {
	case config.PlatformTelegram:
		err = runTelegram(ctx, a)
	default:
		err = runDiscord(ctx, a)
	}
	if err != nil {
		return err
	}

	logger.Info("Bot stopped gracefully")
	return nil
}

// startMaintenance runs the cache purge once, then schedules both jobs
func startMaintenance(ctx context.Context, a *app) (*cron.Cron, error) {
	if err := a.maintenance.CleanupOldData(ctx); err != nil {
		a.logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	c := cron.New()
	if _, err := c.AddFunc(cooldownSweepSchedule, a.maintenance.SweepCooldowns); err != nil {
		return nil, fmt.Errorf("failed to schedule cooldown sweep: %w", err)
	}
	if _, err := c.AddFunc(cachePurgeSchedule, func() {
		a.logger.Info("Running scheduled cleanup")
		if err := a.maintenance.CleanupOldData(ctx); err != nil {
			a.logger.Error("Failed to run scheduled cleanup", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule cache purge: %w", err)
	}
	c.Start()
	return c, nil
}

func runDiscord(ctx context.Context, a *app) error {
	session, err := discord.NewSession(a.cfg.DiscordToken)
	if err != nil {
		return err
	}

	dispatcher := a.dispatcher(discord.NewSender(session, a.logger))
	router := command.NewRouter(a.settings, a.translate, a.cfg.CommandPrefix, a.logger).
		WithLatency(session.HeartbeatLatency)

	discord.NewBot(session, router, dispatcher, a.logger).RegisterHandlers()

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	a.logger.Info("Discord bot started")

	<-ctx.Done()
	a.logger.Info("Shutdown signal received, stopping bot...")
	return session.Close()
}

func runTelegram(ctx context.Context, a *app) error {
	bot, err := tele.NewBot(tele.Settings{
		Token:  a.cfg.TelegramToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	a.logger.Info("Telegram bot initialized")

	dispatcher := a.dispatcher(handler.NewSender(bot, a.logger))
	router := command.NewRouter(a.settings, a.translate, "/", a.logger)

	h := handler.NewHandler(bot, router, dispatcher, handler.NewRoster(), a.logger)
	h.RegisterHandlers()

	go func() {
		a.logger.Info("Bot started successfully")
		bot.Start()
	}()

	<-ctx.Done()
	a.logger.Info("Shutdown signal received, stopping bot...")
	bot.Stop()
	return nil
}
