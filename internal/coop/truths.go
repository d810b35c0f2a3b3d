package coop

import (
	"fmt"
	"sort"
	"time"

	"github.com/alfredjeanlab/soloforge/internal/model"
)

// ProposeTruth proposes a truth for a category. Solo play applies it
// immediately; co-op publishes a propose_truth event and records the
// proposal in the snapshot's pending slot for that category, overwriting
// any prior local value.
func (s *Service) ProposeTruth(category, summary, customText string) (model.Resolution, error) {
	p, err := model.NewProposal(s.Sync.PlayerID(), model.TypeProposeTruth, map[string]any{
		"category":       category,
		"option_summary": summary,
		"custom_text":    customText,
	})
	if err != nil {
		return model.Pending, err
	}
	res, err := s.Sync.Propose(p)
	if err != nil {
		return res, err
	}
	if res == model.Accepted {
		// Solo play: the adapter self-approved, apply directly.
		s.Record.SetTruth(model.Truth{Category: category, OptionSummary: summary, CustomText: customText})
		return res, nil
	}

	s.Campaign.SetPending(model.TruthProposal{
		Category:      category,
		OptionSummary: summary,
		CustomText:    customText,
		Proposer:      s.Sync.PlayerID(),
		ProposedAt:    time.Now().UTC(),
	})
	if err := s.persist(); err != nil {
		return res, err
	}
	return res, nil
}

// PendingProposals lists locally known pending truth proposals, sorted by
// category. No file scanning happens here; call Poll first for fresh state.
func (s *Service) PendingProposals() []model.TruthProposal {
	if s.solo() {
		return nil
	}
	proposals := make([]model.TruthProposal, 0, len(s.Campaign.Pending))
	for _, p := range s.Campaign.Pending {
		proposals = append(proposals, p)
	}
	sort.Slice(proposals, func(i, j int) bool {
		return proposals[i].Category < proposals[j].Category
	})
	return proposals
}

// AcceptTruth accepts the pending proposal for a category: it becomes an
// accepted truth in the snapshot and the local record, the snapshot is
// persisted, and an accept_truth event is published so the proposer's next
// poll converges without running accept itself.
func (s *Service) AcceptTruth(category string) (model.Truth, error) {
	if s.solo() {
		return model.Truth{}, fmt.Errorf("no campaign active: truths are set directly in solo play")
	}
	p, ok := s.Campaign.TakePending(category)
	if !ok {
		return model.Truth{}, fmt.Errorf("no pending truth proposal for category %q", category)
	}

	truth := model.Truth{Category: p.Category, OptionSummary: p.OptionSummary, CustomText: p.CustomText}
	s.Campaign.SetTruth(truth)
	if s.Record != nil {
		s.Record.SetTruth(truth)
	}
	if err := s.persist(); err != nil {
		return truth, err
	}

	event, err := model.NewEvent(s.Sync.PlayerID(), model.TypeAcceptTruth, map[string]any{
		"category":       truth.Category,
		"option_summary": truth.OptionSummary,
	})
	if err != nil {
		return truth, err
	}
	if err := s.Sync.Publish(event); err != nil {
		return truth, err
	}
	return truth, nil
}

// CounterTruth republishes a fresh proposal for a category with a different
// option, superseding the previous pending value the same way a second
// propose would.
func (s *Service) CounterTruth(category, summary, customText string) (model.Resolution, error) {
	if s.solo() {
		return model.Pending, fmt.Errorf("no campaign active: nothing to counter in solo play")
	}
	if _, ok := s.Campaign.Pending[category]; !ok {
		return model.Pending, fmt.Errorf("no pending truth proposal for category %q", category)
	}
	return s.ProposeTruth(category, summary, customText)
}
