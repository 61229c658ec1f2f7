package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	run := newRunCmd()

	root := &cobra.Command{
		Use:   "bot",
		Short: "Selective translation bot for Discord and Telegram",
		Long: `Selective translation bot.

Watches enabled channels and replies to each message with one translation
per language its members read. Configuration comes from the environment
(and an optional .env file).

Commands:
  run         Start the bot (default)
  migrate     Apply database migrations and exit
  translate   Translate text once from the command line
  setlang     Set a user's language
  channel     Enable or disable auto-translation for a channel`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run.RunE,
	}

	root.AddCommand(
		run,
		newMigrateCmd(),
		newTranslateCmd(),
		newSetLangCmd(),
		newChannelCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
