package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alfredjeanlab/soloforge/internal/idgen"
)

// Event type tags exchanged through the campaign event log.
const (
	TypeProposeTruth         = "propose_truth"
	TypeAcceptTruth          = "accept_truth"
	TypeInterpret            = "interpret"
	TypeAcceptInterpretation = "accept_interpretation"
	TypeOracleRoll           = "oracle_roll"
	TypeSharedVowCreated     = "shared_vow_created"
	TypeSharedVowProgress    = "shared_vow_progress"
	TypeSharedVowFulfilled   = "shared_vow_fulfilled"
	TypeResolution           = "resolution"
)

// ProposalIDKey is the payload key under which a proposal event carries its
// own id, so later resolution events can reference it.
const ProposalIDKey = "_proposal_id"

// Event is a single immutable action in the campaign event log. Events are
// appended to the owning player's log file and never mutated or deleted.
type Event struct {
	ID     string         `json:"id"`
	Player string         `json:"player"`
	Type   string         `json:"type"`
	TS     time.Time      `json:"ts"`
	Data   map[string]any `json:"data"`
}

// NewEvent builds an event owned by player, assigning a fresh id and the
// current UTC timestamp.
func NewEvent(player, eventType string, data map[string]any) (Event, error) {
	id, err := idgen.Generate()
	if err != nil {
		return Event{}, fmt.Errorf("new event: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return Event{
		ID:     id,
		Player: player,
		Type:   eventType,
		TS:     time.Now().UTC(),
		Data:   data,
	}, nil
}

// EncodeLine renders the event as a single JSON line including the trailing
// newline, ready to append to a log file.
func (e Event) EncodeLine() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", e.ID, err)
	}
	return append(b, '\n'), nil
}

// DecodeEvent parses one wire line. Missing id, player, or type make the
// line invalid; a missing data object decodes to an empty map.
func DecodeEvent(line []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(line, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if e.ID == "" || e.Player == "" || e.Type == "" {
		return Event{}, fmt.Errorf("decode event: missing required field")
	}
	if e.Data == nil {
		e.Data = map[string]any{}
	}
	return e, nil
}

// String returns a payload value as a string, or "" when absent or of
// another type.
func (e Event) String(key string) string {
	s, _ := e.Data[key].(string)
	return s
}

// Resolution is the synchronous answer to a propose call.
type Resolution int

const (
	Pending Resolution = iota
	Accepted
	Rejected
)

func (r Resolution) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Proposal is a consensus request: an event payload plus the correlation id
// later resolution events reference.
type Proposal struct {
	ID     string
	Player string
	Type   string
	Data   map[string]any
}

// NewProposal builds a proposal with a fresh id.
func NewProposal(player, proposalType string, data map[string]any) (Proposal, error) {
	id, err := idgen.Generate()
	if err != nil {
		return Proposal{}, fmt.Errorf("new proposal: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return Proposal{ID: id, Player: player, Type: proposalType, Data: data}, nil
}
