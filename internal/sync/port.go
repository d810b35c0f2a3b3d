// Package sync exchanges campaign events between players through per-player
// append-only JSONL logs in a shared directory.
//
// The Port interface separates game logic from the transport. Solo play uses
// the no-op LocalAdapter; co-op campaigns use FileLogAdapter, which needs no
// server and no locking because each player appends only to their own file.
// Any external file-sync mechanism (Dropbox, Syncthing, a LAN share) moves
// the files between machines.
package sync

import "github.com/alfredjeanlab/soloforge/internal/model"

// Port is the capability interface command handlers depend on.
type Port interface {
	// PlayerID reports the identity this adapter publishes as.
	PlayerID() string

	// Publish durably records an event as belonging to this player.
	// I/O failures propagate to the caller; there are no retries.
	Publish(event model.Event) error

	// Poll returns newly observed events from all other players, merged
	// into a deterministic order and deduplicated. An event is returned
	// at most once per adapter instance.
	Poll() ([]model.Event, error)

	// Propose publishes a proposal event. A single-writer adapter answers
	// Accepted synchronously; a multi-writer adapter answers Pending and
	// the caller polls for a correlated resolution event.
	Propose(p model.Proposal) (model.Resolution, error)

	// Resolve publishes a resolution event referencing proposalID.
	Resolve(proposalID string, accepted bool) error
}
