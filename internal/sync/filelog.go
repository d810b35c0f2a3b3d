package sync

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alfredjeanlab/soloforge/internal/model"
)

// eventsDirName is the subdirectory of the campaign dir holding the logs.
const eventsDirName = "events"

// FileLogAdapter is a Port backed by per-player JSONL files under
// {campaignDir}/events. Appends are lock-free because each player writes
// only {player}.jsonl. Poll reads every other player's file from the last
// consumed byte offset, merges by (timestamp, player), and deduplicates by
// event id.
//
// Offsets and the seen-id set live only in memory: a fresh process rescans
// partner files from byte zero, so everything applied from polled events
// must be idempotent.
type FileLogAdapter struct {
	player    string
	eventsDir string
	ownFile   string
	logger    *slog.Logger

	offsets map[string]int64
	seen    map[string]struct{}
}

// NewFileLogAdapter creates an adapter for player rooted at campaignDir,
// creating the events directory if absent.
func NewFileLogAdapter(campaignDir, player string, logger *slog.Logger) (*FileLogAdapter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Join(campaignDir, eventsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create events dir: %w", err)
	}
	return &FileLogAdapter{
		player:    player,
		eventsDir: dir,
		ownFile:   filepath.Join(dir, player+".jsonl"),
		logger:    logger,
		offsets:   make(map[string]int64),
		seen:      make(map[string]struct{}),
	}, nil
}

func (a *FileLogAdapter) PlayerID() string { return a.player }

// Publish appends one JSON line to this player's own log file.
func (a *FileLogAdapter) Publish(event model.Event) error {
	line, err := event.EncodeLine()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(a.ownFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open own log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("append event %s: %w", event.ID, err)
	}
	return nil
}

// Poll returns new events from all other players, sorted ascending by
// (timestamp, player) and deduplicated by id.
func (a *FileLogAdapter) Poll() ([]model.Event, error) {
	paths, err := filepath.Glob(filepath.Join(a.eventsDir, "*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("scan events dir: %w", err)
	}

	var merged []model.Event
	for _, path := range paths {
		player := strings.TrimSuffix(filepath.Base(path), ".jsonl")
		if player == a.player {
			continue
		}
		events, newOffset := a.readFrom(path, a.offsets[player])
		a.offsets[player] = newOffset
		merged = append(merged, events...)
	}

	// Clocks across writers are not synchronized; sorting by (ts, player)
	// still gives every adapter the same total order for a given set.
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].TS.Equal(merged[j].TS) {
			return merged[i].TS.Before(merged[j].TS)
		}
		return merged[i].Player < merged[j].Player
	})

	var fresh []model.Event
	for _, e := range merged {
		if _, ok := a.seen[e.ID]; ok {
			continue
		}
		a.seen[e.ID] = struct{}{}
		fresh = append(fresh, e)
	}
	return fresh, nil
}

// Propose publishes a proposal event carrying its own id in the payload and
// answers Pending; the caller polls for a correlated resolution.
func (a *FileLogAdapter) Propose(p model.Proposal) (model.Resolution, error) {
	data := make(map[string]any, len(p.Data)+1)
	for k, v := range p.Data {
		data[k] = v
	}
	data[model.ProposalIDKey] = p.ID

	event, err := model.NewEvent(a.player, p.Type, data)
	if err != nil {
		return model.Pending, err
	}
	event.ID = p.ID
	if err := a.Publish(event); err != nil {
		return model.Pending, err
	}
	return model.Pending, nil
}

// Resolve publishes an accept/reject event referencing a proposal.
func (a *FileLogAdapter) Resolve(proposalID string, accepted bool) error {
	event, err := model.NewEvent(a.player, model.TypeResolution, map[string]any{
		"ref":      proposalID,
		"accepted": accepted,
	})
	if err != nil {
		return err
	}
	return a.Publish(event)
}

// ReadPlayerLog returns every event player has published under campaignDir,
// in file order. A missing log file means no history. Malformed lines are
// skipped, matching Poll.
func ReadPlayerLog(campaignDir, player string) ([]model.Event, error) {
	data, err := os.ReadFile(filepath.Join(campaignDir, eventsDirName, player+".jsonl"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read player log: %w", err)
	}
	var events []model.Event
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if e, err := model.DecodeEvent([]byte(line)); err == nil {
			events = append(events, e)
		}
	}
	return events, nil
}

// readFrom reads new lines from path starting at offset. Malformed lines are
// skipped, not fatal: third-party sync tools can leave truncated or
// duplicated partial writes mid-file. The returned offset is end-of-file
// regardless of parse failures so a bad tail is not rescanned next poll.
// Open/read errors leave the offset unchanged so the file is retried.
func (a *FileLogAdapter) readFrom(path string, offset int64) ([]model.Event, int64) {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			a.logger.Warn("skipping partner log this cycle", "path", path, "err", err)
		}
		return nil, offset
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		a.logger.Warn("skipping partner log this cycle", "path", path, "err", err)
		return nil, offset
	}

	var events []model.Event
	read := offset
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadBytes('\n')
		read += int64(len(line))
		trimmed := strings.TrimSpace(string(line))
		if trimmed != "" {
			if e, decErr := model.DecodeEvent([]byte(trimmed)); decErr == nil {
				events = append(events, e)
			} else {
				a.logger.Debug("skipping malformed log line", "path", path, "err", decErr)
			}
		}
		if err != nil {
			break
		}
	}
	return events, read
}
