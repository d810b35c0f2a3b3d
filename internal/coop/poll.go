package coop

import (
	"github.com/alfredjeanlab/soloforge/internal/model"
)

// Poll fetches newly observed partner events, applies any consensus or
// direct-append transitions, and returns the events for display. Every
// transition is idempotent: a fresh process rescans partner logs from byte
// zero, so the same event may be applied more than once across restarts.
func (s *Service) Poll() ([]model.Event, error) {
	events, err := s.Sync.Poll()
	if err != nil {
		return nil, err
	}
	for i := range events {
		s.apply(&events[i])
	}
	if len(events) > 0 {
		if err := s.persist(); err != nil {
			return events, err
		}
	}
	return events, nil
}

func (s *Service) apply(event *model.Event) {
	if s.Presence != nil {
		s.Presence.Record(event.Player, event.Type, event.TS)
	}

	switch event.Type {
	case model.TypeProposeTruth:
		s.applyProposedTruth(event)

	case model.TypeInterpret:
		// Single slot: the latest unacknowledged partner interpretation wins.
		if !s.interpretationAcknowledged(event.ID) {
			s.pendingInterpretation = event
		}

	case model.TypeAcceptInterpretation:
		if ref := event.String("ref"); ref != "" {
			s.markAcknowledged(ref)
		}
		if p := s.pendingInterpretation; p != nil && event.String("ref") == p.ID {
			s.pendingInterpretation = nil
		}

	case model.TypeAcceptTruth:
		s.applyAcceptedTruth(event)

	case model.TypeSharedVowCreated:
		s.applySharedVowCreated(event)

	case model.TypeSharedVowProgress:
		s.applySharedVowProgress(event)

	case model.TypeSharedVowFulfilled:
		s.applySharedVowFulfilled(event)
	}
}

// applyProposedTruth records a partner's proposal in the local pending slot
// for its category. Whichever proposal is observed last wins locally; two
// truly simultaneous proposals for one category are the caller's problem to
// untangle, as documented.
func (s *Service) applyProposedTruth(event *model.Event) {
	if s.Campaign == nil {
		return
	}
	category := event.String("category")
	if category == "" {
		return
	}
	if _, settled := s.Campaign.TruthFor(category); settled {
		return
	}
	s.Campaign.SetPending(model.TruthProposal{
		Category:      category,
		OptionSummary: event.String("option_summary"),
		CustomText:    event.String("custom_text"),
		Proposer:      event.Player,
		ProposedAt:    event.TS,
	})
}

// applyAcceptedTruth converges the local player on a truth the partner
// accepted, without the local player running accept. It only applies when
// the category has no locally recorded truth yet, which also makes replay
// after a restart harmless.
func (s *Service) applyAcceptedTruth(event *model.Event) {
	category := event.String("category")
	if category == "" || s.Record == nil || s.Record.HasTruth(category) {
		return
	}
	truth := model.Truth{Category: category, OptionSummary: event.String("option_summary")}
	s.Record.SetTruth(truth)
	if s.Campaign != nil {
		if _, ok := s.Campaign.TruthFor(category); !ok {
			s.Campaign.SetTruth(truth)
		}
		delete(s.Campaign.Pending, category)
	}
	s.logger().Info("partner accepted truth", "category", category, "player", event.Player)
}

func (s *Service) applySharedVowCreated(event *model.Event) {
	if s.Campaign == nil {
		return
	}
	description := event.String("description")
	if description == "" || s.findVow(description) != nil {
		return
	}
	s.Campaign.SharedVows = append(s.Campaign.SharedVows, model.SharedVow{
		Description: description,
		Rank:        event.String("rank"),
		CreatedBy:   event.Player,
	})
}

// applySharedVowProgress converges on the higher progress value so replays
// and out-of-order delivery never move a track backwards.
func (s *Service) applySharedVowProgress(event *model.Event) {
	if s.Campaign == nil {
		return
	}
	vow := s.findVow(event.String("description"))
	if vow == nil {
		return
	}
	if progress, ok := event.Data["progress"].(float64); ok && int(progress) > vow.Progress {
		vow.Progress = int(progress)
	}
}

// applySharedVowFulfilled is naturally idempotent: fulfillment is terminal.
func (s *Service) applySharedVowFulfilled(event *model.Event) {
	if s.Campaign == nil {
		return
	}
	if vow := s.findVow(event.String("description")); vow != nil {
		vow.Fulfilled = true
	}
}
