package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alfredjeanlab/soloforge/internal/model"
)

func TestCreateLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	campaign, dir, err := store.Create("The Forge Burns", "ari")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if campaign.Slug != "the-forge-burns" {
		t.Fatalf("slug = %q", campaign.Slug)
	}
	if dir != store.CampaignDir(campaign.Slug) {
		t.Fatalf("dir = %q", dir)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != "The Forge Burns" {
		t.Fatalf("name = %q", loaded.Name)
	}
	if _, ok := loaded.Players["ari"]; !ok {
		t.Fatal("creator lost in round trip")
	}
	if loaded.Pending == nil {
		t.Fatal("pending map not initialized on load")
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, _, err := store.Create("Test", "ari"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := store.Create("test", "brin"); err == nil {
		t.Fatal("expected duplicate slug error")
	}
}

func TestCreateRejectsEmptySlug(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, _, err := store.Create("!!!", "ari"); err == nil {
		t.Fatal("expected empty slug error")
	}
}

func TestJoinRegistersPlayer(t *testing.T) {
	store := NewStore(t.TempDir())
	_, dir, err := store.Create("Test", "ari")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	joined, err := Join(dir, "brin")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(joined.Players) != 2 {
		t.Fatalf("players = %v", joined.Players)
	}

	// Joining twice is harmless.
	again, err := Join(dir, "brin")
	if err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if len(again.Players) != 2 {
		t.Fatalf("rejoin duplicated player: %v", again.Players)
	}
}

func TestListSkipsNonCampaignEntries(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	if _, _, err := store.Create("Beta", "ari"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := store.Create("Alpha", "ari"); err != nil {
		t.Fatalf("create: %v", err)
	}
	// A stray dir without a snapshot and a stray file are both ignored.
	if err := os.MkdirAll(filepath.Join(root, "not-a-campaign"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	slugs, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slugs) != 2 || slugs[0] != "alpha" || slugs[1] != "beta" {
		t.Fatalf("slugs = %v", slugs)
	}
}

func TestListMissingRootIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"))
	slugs, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slugs) != 0 {
		t.Fatalf("slugs = %v", slugs)
	}
}

func TestSavePersistsFullSnapshot(t *testing.T) {
	store := NewStore(t.TempDir())
	campaign, dir, err := store.Create("Test", "ari")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	campaign.SetTruth(model.Truth{Category: "Cataclysm", OptionSummary: "The Sun Plague"})
	campaign.SetPending(model.TruthProposal{
		Category:      "Exodus",
		OptionSummary: "Generation Ships",
		Proposer:      "ari",
	})
	campaign.SharedVows = append(campaign.SharedVows, model.SharedVow{
		Description: "Chart the sector",
		Rank:        "dangerous",
		Progress:    3,
		CreatedBy:   "ari",
	})
	if err := Save(campaign, dir); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := loaded.TruthFor("Cataclysm"); !ok {
		t.Fatal("truth lost")
	}
	if _, ok := loaded.Pending["Exodus"]; !ok {
		t.Fatal("pending proposal lost")
	}
	if len(loaded.SharedVows) != 1 || loaded.SharedVows[0].Progress != 3 {
		t.Fatalf("shared vows lost: %v", loaded.SharedVows)
	}
}

func TestPlayerTruthsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players", "ari.toml")

	r, err := LoadPlayerTruths(path)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if r.HasTruth("Cataclysm") {
		t.Fatal("empty record claims a truth")
	}

	r.SetTruth(model.Truth{Category: "Cataclysm", OptionSummary: "The Sun Plague"})
	r.SetTruth(model.Truth{Category: "Cataclysm", OptionSummary: "The Iron Blight"})

	reloaded, err := LoadPlayerTruths(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Truths) != 1 || reloaded.Truths[0].OptionSummary != "The Iron Blight" {
		t.Fatalf("record = %v", reloaded.Truths)
	}
}
