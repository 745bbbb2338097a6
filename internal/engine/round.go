// Round orchestration — one bill round runs as five strictly ordered
// phases: reset, lobbying, the combined deal/betrayal phase, per-chamber
// votes against a shared pre-round snapshot, and the tally.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/capitol-sim/internal/agents"
)

// RoundResult is the outcome of one bill round.
type RoundResult struct {
	Round  int        `json:"round"`
	Bill   Bill       `json:"bill"`
	House  *VoteTally `json:"house"`
	Senate *VoteTally `json:"senate"`
	Passed bool       `json:"passed"`
}

// RunRound processes one bill through the full cycle and returns the
// result. Deterministic given the session's entropy source.
func (s *Session) RunRound(bill Bill) RoundResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.round++
	dealsBefore := s.Stats.Deals
	betrayalsBefore := s.Stats.Betrayals

	// Phase 1–2: fresh ideology draw and this round's lobby pressure.
	s.resetRoundState()
	s.applyLobbying()

	// Phase 3: one combined social phase across both chambers.
	s.runSocialPhase()

	// Phase 4: votes. Every decision in this round reads the same
	// snapshot of last round's outcomes — an agent deciding early must
	// not leak its new vote to peers deciding later.
	prior := agents.SnapshotVotes(s.Population)
	house := s.runChamberVote(agents.ChamberHouse, bill, prior)
	senate := s.runChamberVote(agents.ChamberSenate, bill, prior)

	// Phase 5: a bill needs a strict majority in both chambers.
	passed := house.Passed() && senate.Passed()

	result := RoundResult{
		Round:  s.round,
		Bill:   bill,
		House:  house,
		Senate: senate,
		Passed: passed,
	}
	s.Results = append(s.Results, result)

	s.Stats.RoundsRun = s.round
	s.Stats.TotalYes += house.TotalYes + senate.TotalYes
	s.Stats.TotalNo += house.TotalNo + senate.TotalNo
	if passed {
		s.Stats.BillsPassed++
		s.EmitEvent(Event{
			Round:       s.round,
			Description: fmt.Sprintf("%s passes (House %d–%d, Senate %d–%d)", bill.Title, house.TotalYes, house.TotalNo, senate.TotalYes, senate.TotalNo),
			Category:    "political",
		})
	} else {
		s.Stats.BillsFailed++
		s.EmitEvent(Event{
			Round:       s.round,
			Description: fmt.Sprintf("%s fails (House %d–%d, Senate %d–%d)", bill.Title, house.TotalYes, house.TotalNo, senate.TotalYes, senate.TotalNo),
			Category:    "political",
		})
	}
	s.updateStats()

	slog.Info("round report",
		"round", s.round,
		"bill", bill.Title,
		"house", fmt.Sprintf("%d-%d", house.TotalYes, house.TotalNo),
		"senate", fmt.Sprintf("%d-%d", senate.TotalYes, senate.TotalNo),
		"passed", passed,
		"deals", s.Stats.Deals-dealsBefore,
		"betrayals", s.Stats.Betrayals-betrayalsBefore,
		"avg_approval", fmt.Sprintf("%.3f", s.Stats.AvgApproval),
		"avg_reputation", fmt.Sprintf("%.3f", s.Stats.AvgReputation),
	)

	return result
}

// resetRoundState redraws every agent's ideological support. Round
// state is overwritten, never accumulated.
func (s *Session) resetRoundState() {
	for _, l := range s.Population {
		l.IdeologicalSupport = s.rng.Float64()
	}
}

// applyLobbying stores this round's pressure on every agent.
func (s *Session) applyLobbying() {
	influence := s.lobbyForRound(s.round)
	for _, l := range s.Population {
		l.LobbyPressure = influence.PressureFor(l.Party)
	}
}

// runSocialPhase gives every agent its independent deal and betrayal
// draws against uniformly random other agents. House and Senate share
// this phase: a member's deals may reach across the rotunda.
func (s *Session) runSocialPhase() {
	if len(s.Population) < 2 {
		return
	}
	for i, a := range s.Population {
		if s.rng.Float64() < s.tuning.DealProb {
			b := s.randomOther(i)
			agents.MakeDeal(a, b)
			s.Stats.Deals++
			s.EmitEvent(Event{
				Round:       s.round,
				Description: fmt.Sprintf("%s strikes a deal with %s", a.Name, b.Name),
				Category:    "deal",
			})
		}
		if s.rng.Float64() < s.tuning.BetrayProb {
			b := s.randomOther(i)
			agents.Betray(a, b)
			s.Stats.Betrayals++
			s.EmitEvent(Event{
				Round:       s.round,
				Description: fmt.Sprintf("%s goes back on their word to %s", a.Name, b.Name),
				Category:    "betrayal",
			})
		}
	}
}

// randomOther picks a uniformly random agent other than the one at
// the given index.
func (s *Session) randomOther(self int) *agents.Legislator {
	idx := s.rng.Intn(len(s.Population) - 1)
	if idx >= self {
		idx++
	}
	return s.Population[idx]
}

// runChamberVote invokes the decision function for every member of one
// chamber. The peer pool for trust lookups is the full cross-chamber
// population.
func (s *Session) runChamberVote(chamber agents.Chamber, bill Bill, prior agents.PriorVotes) *VoteTally {
	tally := NewVoteTally(chamber)
	for _, m := range s.Population {
		if m.Chamber != chamber {
			continue
		}
		yes := m.DecideVote(bill.Stances, s.Population, prior)
		tally.RecordVote(m.Party, yes)
	}
	return tally
}
