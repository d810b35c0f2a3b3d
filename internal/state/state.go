// Package state persists the campaign snapshot and locates campaign
// directories. The snapshot (campaign.toml) is a human-inspectable cache of
// shared state; the per-player event logs remain the durable record, so a
// stale or clobbered snapshot is recoverable in principle by replay.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/alfredjeanlab/soloforge/internal/model"
)

// SnapshotFile is the campaign snapshot file name inside a campaign dir.
const SnapshotFile = "campaign.toml"

// Store resolves campaign directories under a common root (typically inside
// a cloud-synced folder) and reads/writes snapshots.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the campaigns root directory.
func (s *Store) Root() string { return s.root }

// CampaignDir returns the directory for a campaign slug.
func (s *Store) CampaignDir(slug string) string {
	return filepath.Join(s.root, slug)
}

// PlayerSavePath returns where a player's personal save lives inside a
// campaign dir. The save format itself belongs to the character layer.
func PlayerSavePath(campaignDir, player string) string {
	return filepath.Join(campaignDir, "players", player+".toml")
}

// Create makes a new campaign directory and writes its initial snapshot.
// It fails if a campaign with the same slug already exists.
func (s *Store) Create(name, creator string) (*model.Campaign, string, error) {
	c := model.NewCampaign(name, creator)
	if c.Slug == "" {
		return nil, "", fmt.Errorf("campaign name %q produces an empty slug", name)
	}
	dir := s.CampaignDir(c.Slug)
	if _, err := os.Stat(dir); err == nil {
		return nil, "", fmt.Errorf("campaign %q already exists", c.Slug)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create campaign dir: %w", err)
	}
	if err := Save(c, dir); err != nil {
		return nil, "", err
	}
	return c, dir, nil
}

// Join loads the campaign at dir, registers the player, and persists.
func Join(dir, player string) (*model.Campaign, error) {
	c, err := Load(dir)
	if err != nil {
		return nil, err
	}
	c.AddPlayer(player)
	if err := Save(c, dir); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the slugs of all campaigns under the root, sorted. A missing
// root means no campaigns, not an error.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read campaigns root: %w", err)
	}
	var slugs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, e.Name(), SnapshotFile)); err == nil {
			slugs = append(slugs, e.Name())
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Load reads the snapshot from a campaign dir.
func Load(dir string) (*model.Campaign, error) {
	var c model.Campaign
	if _, err := toml.DecodeFile(filepath.Join(dir, SnapshotFile), &c); err != nil {
		return nil, fmt.Errorf("load campaign snapshot: %w", err)
	}
	if c.Players == nil {
		c.Players = map[string]model.PlayerInfo{}
	}
	if c.Pending == nil {
		c.Pending = map[string]model.TruthProposal{}
	}
	return &c, nil
}

// Save writes the snapshot into a campaign dir. Two processes saving
// near-simultaneously last-writer-wins with no detection; the event logs,
// not this file, are the record.
func Save(c *model.Campaign, dir string) error {
	f, err := os.OpenFile(filepath.Join(dir, SnapshotFile), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open campaign snapshot: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode campaign snapshot: %w", err)
	}
	return nil
}
