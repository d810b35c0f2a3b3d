// Package presence tracks partner activity for the campaign status view.
//
// The Tracker maintains an in-memory map of partners, updated as polled
// events are applied. Timestamps come from the events themselves, so the
// roster reflects when partners acted, not when their files synced over.
package presence

import (
	"sort"
	"sync"
	"time"
)

// Entry is a snapshot of one partner's activity.
type Entry struct {
	Player     string    `json:"player"`
	FirstSeen  time.Time `json:"first_seen"`
	LastSeen   time.Time `json:"last_seen"`
	LastEvent  string    `json:"last_event"`
	EventCount int64     `json:"event_count"`
}

// Tracker maintains an in-memory roster of partner activity.
type Tracker struct {
	mu      sync.RWMutex
	players map[string]*playerState
}

type playerState struct {
	firstSeen  time.Time
	lastSeen   time.Time
	lastEvent  string
	eventCount int64
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{players: make(map[string]*playerState)}
}

// Record updates a partner's state from one observed event.
func (t *Tracker) Record(player, eventType string, ts time.Time) {
	if player == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	state, ok := t.players[player]
	if !ok {
		state = &playerState{firstSeen: ts}
		t.players[player] = state
	}
	if ts.Before(state.firstSeen) {
		state.firstSeen = ts
	}
	if !ts.Before(state.lastSeen) {
		state.lastSeen = ts
		state.lastEvent = eventType
	}
	state.eventCount++
}

// Roster returns a snapshot of all tracked partners, most recently active
// first. staleThreshold excludes partners idle longer than that; pass 0 to
// include everyone ever seen.
func (t *Tracker) Roster(staleThreshold time.Duration) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	now := time.Now()
	entries := make([]Entry, 0, len(t.players))
	for player, state := range t.players {
		if staleThreshold > 0 && now.Sub(state.lastSeen) > staleThreshold {
			continue
		}
		entries = append(entries, Entry{
			Player:     player,
			FirstSeen:  state.firstSeen,
			LastSeen:   state.lastSeen,
			LastEvent:  state.lastEvent,
			EventCount: state.eventCount,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastSeen.After(entries[j].LastSeen)
	})
	return entries
}
