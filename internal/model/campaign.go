package model

import (
	"strings"
	"time"
)

// PlayerInfo records when a player joined the campaign.
type PlayerInfo struct {
	Joined time.Time `toml:"joined"`
}

// Truth is a settled answer to a worldbuilding question.
type Truth struct {
	Category      string `toml:"category"`
	OptionSummary string `toml:"option_summary"`
	CustomText    string `toml:"custom_text,omitempty"`
}

// TruthProposal is a truth awaiting partner approval, keyed by category in
// the campaign snapshot. At most one per category from the local process's
// point of view.
type TruthProposal struct {
	Category      string    `toml:"category"`
	OptionSummary string    `toml:"option_summary"`
	CustomText    string    `toml:"custom_text,omitempty"`
	Proposer      string    `toml:"proposer"`
	ProposedAt    time.Time `toml:"proposed_at"`
}

// SharedVow is a campaign-level objective visible to and advanceable by any
// participant. Progress is a tick count against the rank's track.
type SharedVow struct {
	Description string `toml:"description"`
	Rank        string `toml:"rank"`
	Progress    int    `toml:"progress"`
	Fulfilled   bool   `toml:"fulfilled"`
	CreatedBy   string `toml:"created_by,omitempty"`
}

// Campaign is the shared snapshot persisted as campaign.toml. It is a cache
// rebuilt by command handlers as events are applied, not the durable record
// of history; the per-player event logs are.
type Campaign struct {
	Name    string    `toml:"name"`
	Slug    string    `toml:"slug"`
	Created time.Time `toml:"created"`

	Players    map[string]PlayerInfo    `toml:"players,omitempty"`
	SharedVows []SharedVow              `toml:"shared_vows,omitempty"`
	Truths     []Truth                  `toml:"truths,omitempty"`
	Pending    map[string]TruthProposal `toml:"pending_truth_proposals,omitempty"`
}

// NewCampaign creates a campaign with a slug derived from name and the
// creator registered as the first player.
func NewCampaign(name, creator string) *Campaign {
	now := time.Now().UTC()
	return &Campaign{
		Name:    name,
		Slug:    Slugify(name),
		Created: now,
		Players: map[string]PlayerInfo{creator: {Joined: now}},
		Pending: map[string]TruthProposal{},
	}
}

// AddPlayer registers a player if not already present.
func (c *Campaign) AddPlayer(id string) {
	if c.Players == nil {
		c.Players = map[string]PlayerInfo{}
	}
	if _, ok := c.Players[id]; ok {
		return
	}
	c.Players[id] = PlayerInfo{Joined: time.Now().UTC()}
}

// TruthFor returns the accepted truth for a category, if any.
func (c *Campaign) TruthFor(category string) (Truth, bool) {
	for _, t := range c.Truths {
		if t.Category == category {
			return t, true
		}
	}
	return Truth{}, false
}

// SetTruth records a truth, replacing any prior entry for its category.
func (c *Campaign) SetTruth(t Truth) {
	for i := range c.Truths {
		if c.Truths[i].Category == t.Category {
			c.Truths[i] = t
			return
		}
	}
	c.Truths = append(c.Truths, t)
}

// SetPending records a pending proposal for its category, overwriting any
// prior local value (last-write-wins at this process).
func (c *Campaign) SetPending(p TruthProposal) {
	if c.Pending == nil {
		c.Pending = map[string]TruthProposal{}
	}
	c.Pending[p.Category] = p
}

// TakePending removes and returns the pending proposal for a category.
func (c *Campaign) TakePending(category string) (TruthProposal, bool) {
	p, ok := c.Pending[category]
	if ok {
		delete(c.Pending, category)
	}
	return p, ok
}

// Slugify lowercases a name and keeps only alphanumerics and dashes, mapping
// spaces to dashes.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
