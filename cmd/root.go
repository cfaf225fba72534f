package cmd

import (
	"fmt"
	"os"

	"valortracker/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "valortracker",
	Short: "Valorant match history tracker",
	Long: `Valortracker keeps a local copy of players' competitive match history.
It pages through the HenrikDev API, deduplicates against stored matches and
serves history, scoreboards and background sync tasks over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config keeps CLI errors readable
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
