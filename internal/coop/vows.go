package coop

import (
	"fmt"

	"github.com/alfredjeanlab/soloforge/internal/model"
)

// CreateSharedVow records a campaign-level vow and publishes it. Shared vows
// need no consensus: creation is applied optimistically and partners apply
// it on their next poll.
func (s *Service) CreateSharedVow(description, rank string) error {
	if s.solo() {
		return fmt.Errorf("shared vows require an active campaign")
	}
	s.Campaign.SharedVows = append(s.Campaign.SharedVows, model.SharedVow{
		Description: description,
		Rank:        rank,
		CreatedBy:   s.Sync.PlayerID(),
	})
	if err := s.persist(); err != nil {
		return err
	}

	event, err := model.NewEvent(s.Sync.PlayerID(), model.TypeSharedVowCreated, map[string]any{
		"description": description,
		"rank":        rank,
	})
	if err != nil {
		return err
	}
	return s.Sync.Publish(event)
}

// ProgressSharedVow advances a shared vow's progress track and publishes the
// new total so partners converge on the higher value.
func (s *Service) ProgressSharedVow(description string, ticks int) (model.SharedVow, error) {
	if s.solo() {
		return model.SharedVow{}, fmt.Errorf("shared vows require an active campaign")
	}
	vow := s.findVow(description)
	if vow == nil {
		return model.SharedVow{}, fmt.Errorf("no shared vow matching %q", description)
	}
	vow.Progress += ticks
	if err := s.persist(); err != nil {
		return *vow, err
	}

	event, err := model.NewEvent(s.Sync.PlayerID(), model.TypeSharedVowProgress, map[string]any{
		"description": vow.Description,
		"progress":    vow.Progress,
	})
	if err != nil {
		return *vow, err
	}
	if err := s.Sync.Publish(event); err != nil {
		return *vow, err
	}
	return *vow, nil
}

// FulfillSharedVow marks a shared vow fulfilled and publishes the
// transition. Fulfillment is terminal; fulfilling again is a no-op.
func (s *Service) FulfillSharedVow(description string) (model.SharedVow, error) {
	if s.solo() {
		return model.SharedVow{}, fmt.Errorf("shared vows require an active campaign")
	}
	vow := s.findVow(description)
	if vow == nil {
		return model.SharedVow{}, fmt.Errorf("no shared vow matching %q", description)
	}
	if vow.Fulfilled {
		return *vow, nil
	}
	vow.Fulfilled = true
	if err := s.persist(); err != nil {
		return *vow, err
	}

	event, err := model.NewEvent(s.Sync.PlayerID(), model.TypeSharedVowFulfilled, map[string]any{
		"description": vow.Description,
	})
	if err != nil {
		return *vow, err
	}
	if err := s.Sync.Publish(event); err != nil {
		return *vow, err
	}
	return *vow, nil
}

func (s *Service) findVow(description string) *model.SharedVow {
	for i := range s.Campaign.SharedVows {
		if s.Campaign.SharedVows[i].Description == description {
			return &s.Campaign.SharedVows[i]
		}
	}
	return nil
}
