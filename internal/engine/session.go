// Package engine runs bill-voting rounds over a fixed population of
// legislators and aggregates the results.
package engine

import (
	"sync"

	"github.com/talgya/capitol-sim/internal/agents"
	"github.com/talgya/capitol-sim/internal/entropy"
	"github.com/talgya/capitol-sim/internal/lobby"
)

// Tuning holds the per-round event probabilities.
type Tuning struct {
	DealProb   float64 // chance each agent initiates a deal per round
	BetrayProb float64 // chance each agent initiates a betrayal per round
}

// DefaultTuning returns the standard probabilities.
func DefaultTuning() Tuning {
	return Tuning{
		DealProb:   0.10,
		BetrayProb: 0.05,
	}
}

// Event is a notable occurrence during a session.
type Event struct {
	Round       int    `json:"round"`
	Description string `json:"description"`
	Category    string `json:"category"` // "deal", "betrayal", "political"
}

// SessionStats tracks aggregate session statistics.
type SessionStats struct {
	RoundsRun     int     `json:"rounds_run"`
	BillsPassed   int     `json:"bills_passed"`
	BillsFailed   int     `json:"bills_failed"`
	Deals         int     `json:"deals"`
	Betrayals     int     `json:"betrayals"`
	TotalYes      int     `json:"total_yes"`
	TotalNo       int     `json:"total_no"`
	AvgApproval   float64 `json:"avg_approval"`
	AvgReputation float64 `json:"avg_reputation"`
}

// Session holds the legislature and its accumulated round history. The
// population is fixed for the session's lifetime; trust, reputation,
// and approval compound across rounds. Round processing is
// single-threaded; the mutex exists so the HTTP observer can read
// state while rounds run.
type Session struct {
	mu sync.RWMutex

	Population []*agents.Legislator
	Index      map[string]*agents.Legislator

	Results []RoundResult
	Events  []Event
	Stats   SessionStats

	rng        entropy.Source
	tuning     Tuning
	lobbyTable lobby.Table
	lobbyDrift *lobby.Drift

	round int
}

// NewSession assembles a session over an already trust-initialized
// population. The drift layer is optional; a nil drift means the
// configured table is the whole lobby story.
func NewSession(population []*agents.Legislator, rng entropy.Source, tuning Tuning, table lobby.Table, drift *lobby.Drift) *Session {
	index := make(map[string]*agents.Legislator, len(population))
	for _, l := range population {
		index[l.Name] = l
	}

	s := &Session{
		Population: population,
		Index:      index,
		rng:        rng,
		tuning:     tuning,
		lobbyTable: table,
		lobbyDrift: drift,
	}
	s.updateStats()
	return s
}

// CurrentRound returns the most recently processed round number.
func (s *Session) CurrentRound() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.round
}

// EmitEvent appends an event to the session log. The log is trimmed to
// the last 1000 entries to bound memory on long sessions.
func (s *Session) EmitEvent(e Event) {
	s.Events = append(s.Events, e)
	if len(s.Events) > 1000 {
		s.Events = s.Events[len(s.Events)-1000:]
	}
}

// lobbyForRound layers the configured table with the drift sample for
// the given round.
func (s *Session) lobbyForRound(round int) lobby.Influence {
	if s.lobbyDrift == nil {
		return s.lobbyTable
	}
	return lobby.Layer(s.lobbyTable, s.lobbyDrift.ForRound(round))
}

func (s *Session) updateStats() {
	if len(s.Population) == 0 {
		return
	}
	totalApproval := 0.0
	totalReputation := 0.0
	for _, l := range s.Population {
		totalApproval += l.VoterApproval
		totalReputation += l.Reputation
	}
	s.Stats.AvgApproval = totalApproval / float64(len(s.Population))
	s.Stats.AvgReputation = totalReputation / float64(len(s.Population))
}

// StatsSnapshot returns a copy of the session statistics.
func (s *Session) StatsSnapshot() SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Stats
}

// RecentEvents returns up to n most recent events, newest last.
func (s *Session) RecentEvents(n int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := 0
	if len(s.Events) > n {
		start = len(s.Events) - n
	}
	out := make([]Event, len(s.Events)-start)
	copy(out, s.Events[start:])
	return out
}

// ResultsSnapshot returns a copy of all round results so far.
func (s *Session) ResultsSnapshot() []RoundResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RoundResult, len(s.Results))
	copy(out, s.Results)
	return out
}

// LegislatorView returns a copy of the named legislator, including a
// copy of their trust map, safe to serialize while rounds run.
func (s *Session) LegislatorView(name string) (agents.Legislator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.Index[name]
	if !ok {
		return agents.Legislator{}, false
	}
	view := *l
	view.Trust = make(map[string]float64, len(l.Trust))
	for k, v := range l.Trust {
		view.Trust[k] = v
	}
	return view, true
}

// LegislatorSummaries returns a shallow summary of every legislator.
func (s *Session) LegislatorSummaries() []LegislatorSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LegislatorSummary, 0, len(s.Population))
	for _, l := range s.Population {
		out = append(out, LegislatorSummary{
			Name:          l.Name,
			Chamber:       l.Chamber.String(),
			Party:         l.Party,
			PartyLoyalty:  l.PartyLoyalty,
			Reputation:    l.Reputation,
			VoterApproval: l.VoterApproval,
			Captured:      l.Captured,
		})
	}
	return out
}

// LegislatorSummary is the list-view projection of a legislator.
type LegislatorSummary struct {
	Name          string       `json:"name"`
	Chamber       string       `json:"chamber"`
	Party         agents.Party `json:"party"`
	PartyLoyalty  float64      `json:"party_loyalty"`
	Reputation    float64      `json:"reputation"`
	VoterApproval float64      `json:"voter_approval"`
	Captured      bool         `json:"captured"`
}
