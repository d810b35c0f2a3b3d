package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/soloforge/internal/backup"
	"github.com/alfredjeanlab/soloforge/internal/ui"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export the active campaign to configured backup destinations",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if s.campaign == nil {
			return fmt.Errorf("no campaign active")
		}

		dests, err := buildDestinations(cmd.Context(), s.campaign.Campaign.Slug)
		if err != nil {
			return err
		}
		if len(dests) == 0 {
			return fmt.Errorf("no backup destinations configured (set SOLOFORGE_BACKUP_S3_BUCKET or SOLOFORGE_BACKUP_GIT_REPO)")
		}

		sched := backup.NewScheduler(s.campaign.Dir, dests, time.Hour, logger)
		if err := sched.BackupOnce(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(ui.Success("Backup completed."))
		return nil
	},
}

var backupWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Back up the active campaign periodically until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if s.campaign == nil {
			return fmt.Errorf("no campaign active")
		}
		interval := cfg.BackupInterval
		if interval <= 0 {
			return fmt.Errorf("SOLOFORGE_BACKUP_INTERVAL must be set to a positive duration")
		}

		dests, err := buildDestinations(cmd.Context(), s.campaign.Campaign.Slug)
		if err != nil {
			return err
		}
		if len(dests) == 0 {
			return fmt.Errorf("no backup destinations configured (set SOLOFORGE_BACKUP_S3_BUCKET or SOLOFORGE_BACKUP_GIT_REPO)")
		}

		sched := backup.NewScheduler(s.campaign.Dir, dests, interval, logger)
		sched.Start()
		defer sched.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		fmt.Printf("Backing up every %s. Press Ctrl+C to stop.\n", interval)
		<-ctx.Done()
		return nil
	},
}

func buildDestinations(ctx context.Context, slug string) ([]backup.Destination, error) {
	var dests []backup.Destination
	if cfg.BackupS3Bucket != "" {
		key := cfg.BackupS3Key
		if key == "" {
			key = backup.DefaultObjectKey(slug)
		}
		d, err := backup.NewS3Destination(ctx, cfg.BackupS3Bucket, key, cfg.BackupS3Region, cfg.BackupS3Endpoint)
		if err != nil {
			return nil, err
		}
		dests = append(dests, d)
	}
	if cfg.BackupGitRepo != "" {
		file := cfg.BackupGitFile
		if file == "" {
			file = slug + ".jsonl"
		}
		dests = append(dests, backup.NewGitDestination(cfg.BackupGitRepo, file, cfg.BackupGitBranch, slug))
	}
	return dests, nil
}

func init() {
	backupCmd.AddCommand(backupWatchCmd)
}
