package main

import (
	"os"

	"github.com/spf13/cobra"

	"userbot/internal/interfaces/cli/inspect"
	"userbot/internal/interfaces/cli/server"
	"userbot/internal/interfaces/cli/version"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "userbot",
		Short:        "Telegram command plugins",
		Long:         `userbot serves the cha, fw, img, vd and kk chat commands through the Telegram Bot API.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	rootCmd.AddCommand(
		server.NewCommand(&configPath),
		inspect.NewCommand(&configPath),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
