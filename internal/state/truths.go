package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/alfredjeanlab/soloforge/internal/model"
)

// ActiveCampaign pairs a loaded snapshot with its directory.
type ActiveCampaign struct {
	Campaign *model.Campaign
	Dir      string
}

// PlayerTruths is the local player's personal truth record, kept beside the
// player's character save. It satisfies the coop package's TruthRecord.
type PlayerTruths struct {
	path   string
	Truths []model.Truth `toml:"truths"`
}

// LoadPlayerTruths reads the record at path, returning an empty record when
// the file does not exist yet.
func LoadPlayerTruths(path string) (*PlayerTruths, error) {
	r := &PlayerTruths{path: path}
	if _, err := toml.DecodeFile(path, r); err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("load player truths: %w", err)
	}
	return r, nil
}

// HasTruth reports whether a category already has a recorded truth.
func (r *PlayerTruths) HasTruth(category string) bool {
	for _, t := range r.Truths {
		if t.Category == category {
			return true
		}
	}
	return false
}

// SetTruth records a truth, replacing any prior entry for its category, and
// persists the record.
func (r *PlayerTruths) SetTruth(t model.Truth) {
	replaced := false
	for i := range r.Truths {
		if r.Truths[i].Category == t.Category {
			r.Truths[i] = t
			replaced = true
			break
		}
	}
	if !replaced {
		r.Truths = append(r.Truths, t)
	}
	// Persistence failures leave the in-memory record authoritative for
	// this process; the next successful write catches up.
	_ = r.save()
}

func (r *PlayerTruths) save() error {
	if r.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(r)
}
