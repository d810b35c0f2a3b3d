package coop

import (
	"fmt"

	"github.com/alfredjeanlab/soloforge/internal/model"
	"github.com/alfredjeanlab/soloforge/internal/sync"
)

// Interpret publishes an oracle-interpretation hand-off for the partner to
// pick up. Like shared vows, interpretations have no rejection path.
func (s *Service) Interpret(oracle, text string) error {
	if s.solo() {
		return fmt.Errorf("interpretation hand-offs require an active campaign")
	}
	event, err := model.NewEvent(s.Sync.PlayerID(), model.TypeInterpret, map[string]any{
		"oracle": oracle,
		"text":   text,
	})
	if err != nil {
		return err
	}
	return s.Sync.Publish(event)
}

// PendingInterpretation returns the most recent partner interpretation
// awaiting acknowledgment, if any.
func (s *Service) PendingInterpretation() *model.Event {
	return s.pendingInterpretation
}

// AcceptInterpretation acknowledges the pending partner interpretation,
// clears the slot, and publishes an accept_interpretation event referencing
// the original.
func (s *Service) AcceptInterpretation() (model.Event, error) {
	pending := s.pendingInterpretation
	if pending == nil {
		return model.Event{}, fmt.Errorf("no partner interpretation waiting")
	}
	s.pendingInterpretation = nil

	event, err := model.NewEvent(s.Sync.PlayerID(), model.TypeAcceptInterpretation, map[string]any{
		"ref": pending.ID,
	})
	if err != nil {
		return *pending, err
	}
	if err := s.Sync.Publish(event); err != nil {
		return *pending, err
	}
	s.markAcknowledged(pending.ID)
	return *pending, nil
}

// loadAcknowledgments seeds the acknowledged set from the player's own log,
// once per process. Acknowledgments must survive restarts: partner interpret
// events replay from byte zero, and a player's own accept_interpretation
// events never come back through poll.
func (s *Service) loadAcknowledgments() {
	if s.ackLoaded {
		return
	}
	s.ackLoaded = true
	s.acknowledged = make(map[string]struct{})
	if s.solo() {
		return
	}
	events, err := sync.ReadPlayerLog(s.Dir, s.Sync.PlayerID())
	if err != nil {
		s.logger().Warn("cannot seed interpretation acknowledgments", "err", err)
		return
	}
	for _, e := range events {
		if e.Type != model.TypeAcceptInterpretation {
			continue
		}
		if ref := e.String("ref"); ref != "" {
			s.acknowledged[ref] = struct{}{}
		}
	}
}

func (s *Service) markAcknowledged(id string) {
	s.loadAcknowledgments()
	s.acknowledged[id] = struct{}{}
}

func (s *Service) interpretationAcknowledged(id string) bool {
	s.loadAcknowledgments()
	_, ok := s.acknowledged[id]
	return ok
}
