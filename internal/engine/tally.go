// Vote tallying — pure aggregation of per-member outcomes for one
// chamber in one round.
package engine

import (
	"github.com/talgya/capitol-sim/internal/agents"
)

// PartyCount holds yes/no totals for one party.
type PartyCount struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// VoteTally aggregates one chamber's votes in one round. Created fresh
// per chamber-round and discarded after reporting.
type VoteTally struct {
	Chamber      agents.Chamber               `json:"chamber"`
	TotalYes     int                          `json:"total_yes"`
	TotalNo      int                          `json:"total_no"`
	PartyResults map[agents.Party]*PartyCount `json:"party_results"`
}

// NewVoteTally creates an empty tally for a chamber.
func NewVoteTally(chamber agents.Chamber) *VoteTally {
	return &VoteTally{
		Chamber:      chamber,
		PartyResults: make(map[agents.Party]*PartyCount),
	}
}

// RecordVote counts one member's vote under their party.
func (t *VoteTally) RecordVote(party agents.Party, yes bool) {
	pc, ok := t.PartyResults[party]
	if !ok {
		pc = &PartyCount{}
		t.PartyResults[party] = pc
	}
	if yes {
		pc.Yes++
		t.TotalYes++
	} else {
		pc.No++
		t.TotalNo++
	}
}

// Passed reports whether the chamber approved the bill. A tie fails.
func (t *VoteTally) Passed() bool {
	return t.TotalYes > t.TotalNo
}
