package cmd

import (
	"context"
	"errors"
	"fmt"

	"valortracker/core/config"
	"valortracker/core/logger"
	"valortracker/feature/matches"
	"valortracker/feature/matches/matchsync"
	"valortracker/feature/players"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	syncPUUID  string
	syncRegion string
	syncName   string
	syncTag    string
)

// syncCmd runs one synchronization in the foreground.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize one player's match history",
	Long: `Runs one synchronization bounded by the background cap and prints the summary.

Examples:
  # By stable player id
  sync --puuid 2f1c... --region eu

  # By display name, resolved through the provider
  sync --name Jett --tag EUW`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncPUUID, "puuid", "", "Player PUUID")
	syncCmd.Flags().StringVar(&syncRegion, "region", "", "Player region (eu, na, ap, kr, latam, br)")
	syncCmd.Flags().StringVar(&syncName, "name", "", "Display name, resolved when --puuid is empty")
	syncCmd.Flags().StringVar(&syncTag, "tag", "", "Display tag, resolved when --puuid is empty")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
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

	d, err := openDeps(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer d.close()

	puuid, region := syncPUUID, syncRegion
	if puuid == "" {
		if syncName == "" || syncTag == "" {
			return errors.New("either --puuid and --region or --name and --tag are required")
		}
		p, err := players.NewService(d.henrik, d.store, l).Resolve(ctx, syncName, syncTag)
		if err != nil {
			return err
		}
		puuid = p.ID
		if region == "" {
			region = p.Region
		}
	}

	svc := matches.NewService(d.store, d.henrik, d.cache, nil, d.archive, cfg.Sync, l)
	res, err := svc.SyncBackground(ctx, puuid, region, func(r matchsync.Result) {
		l.Info("Sync progress", zap.Int("pages", r.Pages), zap.Int("fetched", r.Fetched), zap.Int("inserted", r.Inserted))
	})
	if res != nil {
		l.Info("Sync finished",
			zap.String("player_id", res.PlayerID),
			zap.String("region", res.Region),
			zap.String("reason", string(res.Reason)),
			zap.Int("pages", res.Pages),
			zap.Int("fetched", res.Fetched),
			zap.Int("inserted", res.Inserted),
			zap.Int("linked", res.Linked),
			zap.Int("skipped", res.Skipped),
			zap.Int("duplicates", res.Duplicates),
		)
	}
	return err
}
