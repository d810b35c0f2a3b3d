package model

import (
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"The Forge Burns":     "the-forge-burns",
		"  Sector 9  ":        "sector-9",
		"What?! A Campaign.":  "what-a-campaign",
		"---":                 "---",
		"Ümlauts & Ampersand": "mlauts--ampersand",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewCampaignRegistersCreator(t *testing.T) {
	c := NewCampaign("The Forge Burns", "ari")
	if c.Slug != "the-forge-burns" {
		t.Fatalf("slug = %q", c.Slug)
	}
	if _, ok := c.Players["ari"]; !ok {
		t.Fatal("creator not registered")
	}
	if c.Created.IsZero() {
		t.Fatal("created timestamp unset")
	}
}

func TestAddPlayerIsIdempotent(t *testing.T) {
	c := NewCampaign("Test", "ari")
	joined := c.Players["ari"].Joined

	time.Sleep(time.Millisecond)
	c.AddPlayer("ari")
	if !c.Players["ari"].Joined.Equal(joined) {
		t.Fatal("re-adding a player reset their joined time")
	}

	c.AddPlayer("brin")
	if len(c.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(c.Players))
	}
}

func TestSetTruthReplacesByCategory(t *testing.T) {
	c := NewCampaign("Test", "ari")
	c.SetTruth(Truth{Category: "Cataclysm", OptionSummary: "The Sun Plague"})
	c.SetTruth(Truth{Category: "Exodus", OptionSummary: "Generation Ships"})
	c.SetTruth(Truth{Category: "Cataclysm", OptionSummary: "The Iron Blight"})

	if len(c.Truths) != 2 {
		t.Fatalf("expected 2 truths, got %d", len(c.Truths))
	}
	got, ok := c.TruthFor("Cataclysm")
	if !ok || got.OptionSummary != "The Iron Blight" {
		t.Fatalf("truth not replaced: %+v", got)
	}
}

func TestPendingLastWriteWins(t *testing.T) {
	c := NewCampaign("Test", "ari")
	c.SetPending(TruthProposal{Category: "Cataclysm", OptionSummary: "The Sun Plague", Proposer: "ari"})
	c.SetPending(TruthProposal{Category: "Cataclysm", OptionSummary: "The Exodus War", Proposer: "brin"})

	p, ok := c.TakePending("Cataclysm")
	if !ok || p.OptionSummary != "The Exodus War" {
		t.Fatalf("expected the later proposal, got %+v", p)
	}
	if _, ok := c.TakePending("Cataclysm"); ok {
		t.Fatal("pending slot not cleared")
	}
}
