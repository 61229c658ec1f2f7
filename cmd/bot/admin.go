package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"translatebot/internal/config"
	"translatebot/internal/domain"
	"translatebot/internal/render"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// withApp runs fn against freshly wired services for an offline command
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Schema up to date (%s backend)\n", a.store.Backend)
				return nil
			})
		},
	}
}

func newTranslateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "translate <lang> <text...>",
		Short:   "Translate text once from the command line",
		Example: "  bot translate es Hello everyone",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				res, err := a.translate.TranslateManual(ctx, "", args[0], strings.Join(args[1:], " "))
				if err != nil {
					if errors.Is(err, domain.ErrInvalidInput) {
						return err
					}
					a.logger.Error("Manual translation failed", zap.Error(err))
					return errors.New(render.TranslationFailed)
				}
				fmt.Fprintln(cmd.OutOrStdout(), render.Translation("", res.Original, res.Translated, res.SourceLanguage, res.TargetLanguage).Text())
				return nil
			})
		},
	}
}

func newSetLangCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setlang <user-id> <lang>",
		Short: "Set a user's language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.settings.SetUserLanguage(ctx, args[0], args[1]); err != nil {
					return err
				}
				code := a.settings.GetUserLanguage(ctx, args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "User %s now reads %s\n", args[0], render.LanguageLabel(code))
				return nil
			})
		},
	}
}

func newChannelCmd() *cobra.Command {
	var guildID string

	cmd := &cobra.Command{
		Use:       "channel <channel-id> enable|disable|status",
		Short:     "Enable or disable auto-translation for a channel",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"enable", "disable", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			channelID, action := args[0], strings.ToLower(args[1])
			switch action {
			case "enable", "disable", "status":
			default:
				return fmt.Errorf("unknown action %q, use enable, disable or status", action)
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				if action != "status" {
					a.settings.SetChannelEnabled(ctx, channelID, action == "enable", guildID)
				}

				state := "disabled"
				if a.settings.IsChannelEnabled(ctx, channelID) {
					state = "enabled"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Auto-translate is %s for channel %s\n", state, channelID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&guildID, "guild", "", "Guild (server) the channel belongs to")

	return cmd
}
