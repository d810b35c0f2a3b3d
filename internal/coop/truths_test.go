package coop

import (
	"log/slog"
	"os"
	"testing"

	"github.com/alfredjeanlab/soloforge/internal/model"
	"github.com/alfredjeanlab/soloforge/internal/presence"
	"github.com/alfredjeanlab/soloforge/internal/state"
	syncport "github.com/alfredjeanlab/soloforge/internal/sync"
)

// fakeRecord is an in-memory personal truth record.
type fakeRecord struct {
	truths map[string]model.Truth
}

func newFakeRecord() *fakeRecord {
	return &fakeRecord{truths: map[string]model.Truth{}}
}

func (r *fakeRecord) HasTruth(category string) bool {
	_, ok := r.truths[category]
	return ok
}

func (r *fakeRecord) SetTruth(t model.Truth) {
	r.truths[t.Category] = t
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newCoopService wires a Service for player over a shared campaign dir, the
// way one participant's process would.
func newCoopService(t *testing.T, dir, player string) (*Service, *fakeRecord) {
	t.Helper()
	campaign, err := state.Load(dir)
	if err != nil {
		t.Fatalf("load campaign: %v", err)
	}
	adapter, err := syncport.NewFileLogAdapter(dir, player, testLogger())
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	record := newFakeRecord()
	return &Service{
		Sync:     adapter,
		Campaign: campaign,
		Dir:      dir,
		Record:   record,
		Save:     state.Save,
		Presence: presence.New(),
		Logger:   testLogger(),
	}, record
}

func newCampaignDir(t *testing.T) string {
	t.Helper()
	store := state.NewStore(t.TempDir())
	_, dir, err := store.Create("Test Campaign", "ari")
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if _, err := state.Join(dir, "brin"); err != nil {
		t.Fatalf("join campaign: %v", err)
	}
	return dir
}

func TestSoloProposeAppliesImmediately(t *testing.T) {
	record := newFakeRecord()
	svc := &Service{
		Sync:   syncport.NewLocalAdapter("ari"),
		Record: record,
		Logger: testLogger(),
	}

	res, err := svc.ProposeTruth("Cataclysm", "The Sun Plague", "")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if res != model.Accepted {
		t.Fatalf("expected Accepted, got %v", res)
	}
	if !record.HasTruth("Cataclysm") {
		t.Fatal("truth not applied to the personal record")
	}
	if proposals := svc.PendingProposals(); len(proposals) != 0 {
		t.Fatalf("solo play left pending proposals: %v", proposals)
	}
}

func TestTruthConsensusConvergesBothPlayers(t *testing.T) {
	dir := newCampaignDir(t)
	ari, ariRecord := newCoopService(t, dir, "ari")
	brin, brinRecord := newCoopService(t, dir, "brin")

	// Ari proposes.
	res, err := ari.ProposeTruth("Cataclysm", "The Sun Plague", "")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if res != model.Pending {
		t.Fatalf("expected Pending in co-op, got %v", res)
	}
	if len(ari.PendingProposals()) != 1 {
		t.Fatal("proposer's pending slot not set")
	}

	// Brin's poll surfaces the proposal.
	events, err := brin.Poll()
	if err != nil {
		t.Fatalf("brin poll: %v", err)
	}
	if len(events) != 1 || events[0].Type != model.TypeProposeTruth {
		t.Fatalf("expected the propose_truth event, got %v", events)
	}
	proposals := brin.PendingProposals()
	if len(proposals) != 1 || proposals[0].Proposer != "ari" {
		t.Fatalf("pending proposal not recorded: %v", proposals)
	}

	// Brin accepts: snapshot and personal record update, event published.
	truth, err := brin.AcceptTruth("Cataclysm")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if truth.OptionSummary != "The Sun Plague" {
		t.Fatalf("accepted wrong option: %+v", truth)
	}
	if !brinRecord.HasTruth("Cataclysm") {
		t.Fatal("acceptor's record not updated")
	}

	// Ari's next poll auto-applies the acceptance without running accept.
	events, err = ari.Poll()
	if err != nil {
		t.Fatalf("ari poll: %v", err)
	}
	if len(events) != 1 || events[0].Type != model.TypeAcceptTruth {
		t.Fatalf("expected the accept_truth event, got %v", events)
	}
	got, ok := ariRecord.truths["Cataclysm"]
	if !ok || got.OptionSummary != "The Sun Plague" {
		t.Fatalf("proposer did not converge: %+v", ariRecord.truths)
	}
	if len(ari.PendingProposals()) != 0 {
		t.Fatal("proposer's pending slot not cleared")
	}
}

func TestAcceptedTruthNotReappliedOverLocalValue(t *testing.T) {
	dir := newCampaignDir(t)
	ari, ariRecord := newCoopService(t, dir, "ari")
	brin, _ := newCoopService(t, dir, "brin")

	// Ari already settled this category locally.
	ariRecord.SetTruth(model.Truth{Category: "Cataclysm", OptionSummary: "The Iron Blight"})

	event, err := model.NewEvent("brin", model.TypeAcceptTruth, map[string]any{
		"category":       "Cataclysm",
		"option_summary": "The Sun Plague",
	})
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	if err := brin.Sync.Publish(event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if _, err := ari.Poll(); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if got := ariRecord.truths["Cataclysm"].OptionSummary; got != "The Iron Blight" {
		t.Fatalf("local truth overwritten: %q", got)
	}
}

func TestReplayAfterRestartIsIdempotent(t *testing.T) {
	dir := newCampaignDir(t)
	ari, _ := newCoopService(t, dir, "ari")
	brin, _ := newCoopService(t, dir, "brin")

	if _, err := ari.ProposeTruth("Cataclysm", "The Sun Plague", ""); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if _, err := brin.Poll(); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if _, err := brin.AcceptTruth("Cataclysm"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := ari.Poll(); err != nil {
		t.Fatalf("poll: %v", err)
	}

	// Simulate ari restarting: fresh adapter, fresh offsets and seen set,
	// but a record that survived (as the character save would).
	restarted, restartedRecord := newCoopService(t, dir, "ari")
	restartedRecord.SetTruth(model.Truth{Category: "Cataclysm", OptionSummary: "The Sun Plague"})

	if _, err := restarted.Poll(); err != nil {
		t.Fatalf("replay poll: %v", err)
	}
	if got := restartedRecord.truths["Cataclysm"].OptionSummary; got != "The Sun Plague" {
		t.Fatalf("replay mangled the record: %q", got)
	}
	if len(restarted.PendingProposals()) != 0 {
		t.Fatalf("replayed proposal resurrected pending state: %v", restarted.PendingProposals())
	}
}

func TestCounterSupersedesPendingProposal(t *testing.T) {
	dir := newCampaignDir(t)
	ari, _ := newCoopService(t, dir, "ari")
	brin, _ := newCoopService(t, dir, "brin")

	if _, err := ari.ProposeTruth("Cataclysm", "The Sun Plague", ""); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if _, err := brin.Poll(); err != nil {
		t.Fatalf("poll: %v", err)
	}

	if _, err := brin.CounterTruth("Cataclysm", "The Exodus War", ""); err != nil {
		t.Fatalf("counter: %v", err)
	}
	proposals := brin.PendingProposals()
	if len(proposals) != 1 || proposals[0].OptionSummary != "The Exodus War" {
		t.Fatalf("counter did not supersede: %v", proposals)
	}

	// Ari observes the counter-proposal and its pending slot flips too.
	if _, err := ari.Poll(); err != nil {
		t.Fatalf("poll: %v", err)
	}
	proposals = ari.PendingProposals()
	if len(proposals) != 1 || proposals[0].OptionSummary != "The Exodus War" || proposals[0].Proposer != "brin" {
		t.Fatalf("proposer did not observe counter: %v", proposals)
	}
}

func TestAcceptWithoutPendingFails(t *testing.T) {
	dir := newCampaignDir(t)
	ari, _ := newCoopService(t, dir, "ari")
	if _, err := ari.AcceptTruth("Cataclysm"); err == nil {
		t.Fatal("expected error accepting with nothing pending")
	}
}

func TestCounterWithoutPendingFails(t *testing.T) {
	dir := newCampaignDir(t)
	ari, _ := newCoopService(t, dir, "ari")
	if _, err := ari.CounterTruth("Cataclysm", "The Exodus War", ""); err == nil {
		t.Fatal("expected error countering with nothing pending")
	}
}
