// Vote decision — the weighted scoring function that turns a
// legislator's internal and relational state into a yes/no vote.
package agents

// Stances maps a party to its leadership's position strength on a bill.
// Values above 0.5 mean the leadership favors the bill. Parties absent
// from the table default to a neutral 0.5.
type Stances map[Party]float64

// StanceFor returns the stance for a party, defaulting to neutral.
func (s Stances) StanceFor(p Party) float64 {
	stance, ok := s[p]
	if !ok {
		return neutralStance
	}
	return stance
}

// PriorVotes is a snapshot of every legislator's previous-round vote,
// taken before any decision in the current round runs. All agents in a
// round must decide against the same snapshot; without it, an agent
// deciding early would leak its current-round vote to peers deciding
// later. Absent names read as false, which is the first-round cold
// start.
type PriorVotes map[string]bool

// SnapshotVotes captures the current VotedYesLastRound flag of every
// legislator.
func SnapshotVotes(population []*Legislator) PriorVotes {
	prior := make(PriorVotes, len(population))
	for _, l := range population {
		prior[l.Name] = l.VotedYesLastRound
	}
	return prior
}

// DecideVote computes the vote score and returns the binary outcome.
// Side effects: records the outcome in VotedYesLastRound and applies
// the voter-approval update. Peers are the full cross-chamber
// population; the agent's own entry is skipped.
func (l *Legislator) DecideVote(stances Stances, peers []*Legislator, prior PriorVotes) bool {
	stance := stances.StanceFor(l.Party)
	yes := l.voteScore(stance, peers, prior) >= voteThreshold

	l.VotedYesLastRound = yes
	l.updateVoterApproval(yes == (stance >= neutralStance))
	return yes
}

// voteScore is the pure scoring function. The weighted base terms sum
// to 0.70; trust, capture, and lobby terms stack on top unbounded. That
// the result is not a normalized weighted average is a property of the
// model, not an accident.
func (l *Legislator) voteScore(stance float64, peers []*Legislator, prior PriorVotes) float64 {
	partyPressure := l.PartyLoyalty * stance
	personalBelief := l.IdeologicalSupport
	selfPreservation := l.ReelectionConcern * (1 - l.VoterApproval)

	trustBonus := 0.0
	trustPenalty := 0.0
	for _, p := range peers {
		if p.Name == l.Name {
			continue
		}
		// Only peers who voted yes last round pull on the score.
		if !prior[p.Name] {
			continue
		}
		weight := l.Trust[p.Name] * p.Reputation
		switch {
		case weight > trustBonusFloor:
			trustBonus += trustTermScale * weight
		case weight < trustPenaltyCeil:
			trustPenalty += trustTermScale * (1 - weight)
		}
	}

	score := weightParty*partyPressure +
		weightBelief*personalBelief +
		weightSelf*selfPreservation +
		trustBonus - trustPenalty +
		l.LobbyPressure
	if l.Captured {
		score += captureBonus
	}
	return score
}

// updateVoterApproval nudges approval toward or away from the voters
// depending on whether the vote matched the party line.
func (l *Legislator) updateVoterApproval(votedWithParty bool) {
	if votedWithParty {
		l.VoterApproval = clamp01(l.VoterApproval + approvalStep)
	} else {
		l.VoterApproval = clamp01(l.VoterApproval - approvalStep)
	}
}
