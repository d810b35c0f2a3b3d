package sync

import "github.com/alfredjeanlab/soloforge/internal/model"

// LocalAdapter is the Port used when no campaign is active. Every operation
// is a no-op except Propose, which self-approves: with no partner to wait
// for, a proposal is trivially accepted.
type LocalAdapter struct {
	player string
}

// NewLocalAdapter creates a solo-mode adapter for the given player.
func NewLocalAdapter(player string) *LocalAdapter {
	return &LocalAdapter{player: player}
}

func (a *LocalAdapter) PlayerID() string { return a.player }

func (a *LocalAdapter) Publish(model.Event) error { return nil }

func (a *LocalAdapter) Poll() ([]model.Event, error) { return nil, nil }

func (a *LocalAdapter) Propose(model.Proposal) (model.Resolution, error) {
	return model.Accepted, nil
}

func (a *LocalAdapter) Resolve(string, bool) error { return nil }
