package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"valortracker/core/config"
	"valortracker/core/logger"
	"valortracker/feature/matches"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// yesConfirm skips the interactive confirmation of destructive commands.
var yesConfirm bool

// clearCmd removes every stored match and participation.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored matches and participations",
	Long: `Removes all stored matches and participations and invalidates the cached
listings of every affected player. Players are kept.

Examples:
  # With interactive confirmation
  clear

  # Non-interactive
  clear --yes`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	RootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	d, err := openDeps(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer d.close()

	svc := matches.NewService(d.store, d.henrik, d.cache, nil, d.archive, cfg.Sync, l)
	n, err := svc.Clear(ctx)
	if err != nil {
		return err
	}
	l.Info("Cleared match history", zap.Int("players", n))
	return nil
}

func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
