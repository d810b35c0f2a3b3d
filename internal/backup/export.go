package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alfredjeanlab/soloforge/internal/model"
	"github.com/alfredjeanlab/soloforge/internal/state"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version    string    `json:"version"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	Campaign   string    `json:"campaign"`
	EventCount int       `json:"event_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes the campaign snapshot and the full merged event history
// from campaignDir as JSONL to w. Events are merged across all player logs
// and sorted by (timestamp, player); malformed lines are skipped the same
// way poll skips them.
func ExportJSONL(campaignDir string, w io.Writer) error {
	campaign, err := state.Load(campaignDir)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	events, err := readAllEvents(filepath.Join(campaignDir, "events"))
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:    "1",
		Type:       "header",
		Timestamp:  time.Now().UTC(),
		Campaign:   campaign.Slug,
		EventCount: len(events),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	if err := enc.Encode(record{Type: "campaign", Data: campaign}); err != nil {
		return fmt.Errorf("encode campaign: %w", err)
	}

	for _, e := range events {
		if err := enc.Encode(record{Type: "event", Data: e}); err != nil {
			return fmt.Errorf("encode event %s: %w", e.ID, err)
		}
	}
	return nil
}

func readAllEvents(eventsDir string) ([]model.Event, error) {
	paths, err := filepath.Glob(filepath.Join(eventsDir, "*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("scan events dir: %w", err)
	}

	var events []model.Event
	seen := make(map[string]struct{})
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			e, err := model.DecodeEvent([]byte(line))
			if err != nil {
				continue
			}
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}
			events = append(events, e)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].TS.Equal(events[j].TS) {
			return events[i].TS.Before(events[j].TS)
		}
		return events[i].Player < events[j].Player
	})
	return events, nil
}
