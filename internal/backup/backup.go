// Package backup exports a campaign directory (snapshot plus merged event
// history) as JSONL and ships it to off-site destinations on a schedule.
// Backups are strictly one-way: the sync transport between players remains
// the shared directory alone.
package backup

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Destination is the interface for a backup target (S3, git, etc.).
type Destination interface {
	// Write sends the JSONL payload to the destination.
	Write(ctx context.Context, data []byte) error
}

// Scheduler runs periodic backups of one campaign dir to one or more
// destinations.
type Scheduler struct {
	campaignDir  string
	destinations []Destination
	interval     time.Duration
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that exports campaignDir to the given
// destinations at the specified interval.
func NewScheduler(campaignDir string, destinations []Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		campaignDir:  campaignDir,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
	}
}

// Start begins periodic backup. It runs an initial backup immediately, then
// on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current backup (if any) to
// finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	s.backupOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.backupOnce(ctx)
		}
	}
}

// BackupOnce exports the campaign dir and writes it to every destination.
func (s *Scheduler) BackupOnce(ctx context.Context) error {
	var buf bytes.Buffer
	if err := ExportJSONL(s.campaignDir, &buf); err != nil {
		return fmt.Errorf("backup export: %w", err)
	}
	data := buf.Bytes()

	for i, dest := range s.destinations {
		if err := dest.Write(ctx, data); err != nil {
			return fmt.Errorf("backup destination %d: %w", i, err)
		}
	}
	return nil
}

func (s *Scheduler) backupOnce(ctx context.Context) {
	if err := s.BackupOnce(ctx); err != nil {
		s.logger.Error("backup failed", "err", err)
		return
	}
	s.logger.Info("backup completed", "destinations", len(s.destinations))
}
