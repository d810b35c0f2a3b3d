// Package coop implements the shared-campaign workflows layered on the sync
// port: the propose/accept/counter consensus for truths, direct-append
// shared vows, and oracle-interpretation hand-offs.
package coop

import (
	"log/slog"

	"github.com/alfredjeanlab/soloforge/internal/model"
	"github.com/alfredjeanlab/soloforge/internal/presence"
	"github.com/alfredjeanlab/soloforge/internal/sync"
)

// TruthRecord is the local player's personal truth record. The character
// layer owns the concrete implementation and its persistence.
type TruthRecord interface {
	HasTruth(category string) bool
	SetTruth(t model.Truth)
}

// Saver persists the campaign snapshot after a mutation. The state layer
// provides the concrete implementation.
type Saver func(c *model.Campaign, dir string) error

// Service coordinates co-op workflows for one player. Campaign and Dir are
// nil/empty in solo mode, in which case the sync port is a LocalAdapter and
// proposals self-approve.
type Service struct {
	Sync     sync.Port
	Campaign *model.Campaign
	Dir      string
	Record   TruthRecord
	Save     Saver
	Presence *presence.Tracker
	Logger   *slog.Logger

	// pendingInterpretation is the single-slot cache of the most recent
	// partner interpretation awaiting acknowledgment.
	pendingInterpretation *model.Event

	// acknowledged holds interpretation event ids already acknowledged,
	// seeded lazily from the player's own log so replayed interpret events
	// stay settled across restarts.
	acknowledged map[string]struct{}
	ackLoaded    bool
}

func (s *Service) solo() bool { return s.Campaign == nil }

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Service) persist() error {
	if s.solo() || s.Save == nil {
		return nil
	}
	return s.Save(s.Campaign, s.Dir)
}
