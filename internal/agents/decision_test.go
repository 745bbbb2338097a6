package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLegislatorValidatesTraits(t *testing.T) {
	cases := []struct {
		name    string
		loyalty float64
		concern float64
		wantErr bool
	}{
		{"loyalty at floor", 0.5, 0.5, false},
		{"loyalty at ceiling", 1.0, 0.5, false},
		{"loyalty below floor", 0.49, 0.5, true},
		{"loyalty above ceiling", 1.01, 0.5, true},
		{"concern at floor", 0.8, 0.0, false},
		{"concern at ceiling", 0.8, 1.0, false},
		{"concern negative", 0.8, -0.1, true},
		{"concern above one", 0.8, 1.1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLegislator("X", ChamberHouse, PartyUnity, tc.loyalty, tc.concern, false)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	_, err := NewLegislator("", ChamberHouse, PartyUnity, 0.8, 0.5, false)
	assert.Error(t, err, "empty name rejected")
}

func TestDecideVoteLoyalistScenario(t *testing.T) {
	// Fully loyal, fully convinced, no reelection worries, no peers:
	// score = 0.30*1.0 + 0.25*1.0 = 0.55.
	l, err := NewLegislator("Sole Voter", ChamberHouse, PartyUnity, 1.0, 0.0, false)
	require.NoError(t, err)
	l.IdeologicalSupport = 1.0

	yes := l.DecideVote(Stances{PartyUnity: 1.0}, []*Legislator{l}, PriorVotes{})

	assert.True(t, yes)
	assert.True(t, l.VotedYesLastRound)
	assert.InDelta(t, 0.51, l.VoterApproval, 1e-9, "voting with the party earns approval")
}

func TestDecideVoteOpposedScenario(t *testing.T) {
	// Same agent, hostile stance and zero conviction: score = 0.
	l, err := NewLegislator("Sole Voter", ChamberHouse, PartyUnity, 1.0, 0.0, false)
	require.NoError(t, err)
	l.IdeologicalSupport = 0.0

	yes := l.DecideVote(Stances{PartyUnity: 0.0}, []*Legislator{l}, PriorVotes{})

	assert.False(t, yes)
	assert.False(t, l.VotedYesLastRound)
	assert.InDelta(t, 0.51, l.VoterApproval, 1e-9, "a no vote against a hostile stance is party-aligned")
}

func TestVoteScoreComponents(t *testing.T) {
	l, err := NewLegislator("Self", ChamberHouse, PartyUnity, 0.8, 0.6, false)
	require.NoError(t, err)
	l.IdeologicalSupport = 0.4
	l.VoterApproval = 0.3

	base := l.voteScore(0.9, nil, PriorVotes{})
	// 0.30*0.8*0.9 + 0.25*0.4 + 0.15*0.6*(1-0.3)
	assert.InDelta(t, 0.216+0.1+0.063, base, 1e-9)

	l.LobbyPressure = -0.07
	assert.InDelta(t, base-0.07, l.voteScore(0.9, nil, PriorVotes{}), 1e-9)

	l.Captured = true
	assert.InDelta(t, base-0.07+0.05, l.voteScore(0.9, nil, PriorVotes{}), 1e-9)
}

func TestVoteScoreTrustTerms(t *testing.T) {
	self, err := NewLegislator("Self", ChamberHouse, PartyUnity, 0.8, 0.0, false)
	require.NoError(t, err)
	ally, err := NewLegislator("Ally", ChamberSenate, PartyUnity, 0.8, 0.0, false)
	require.NoError(t, err)
	rival, err := NewLegislator("Rival", ChamberHouse, PartyProgress, 0.8, 0.0, false)
	require.NoError(t, err)
	InitializeTrust([]*Legislator{self, ally, rival})

	self.Trust["Ally"] = 0.9
	ally.Reputation = 0.9 // weight 0.81 > 0.7
	self.Trust["Rival"] = 0.2
	rival.Reputation = 0.5 // weight 0.10 < 0.3

	peers := []*Legislator{self, ally, rival}
	base := self.voteScore(0.5, peers, PriorVotes{})

	// Peers who did not vote yes last round contribute nothing.
	assert.InDelta(t, base, self.voteScore(0.5, peers, PriorVotes{"Ally": false, "Rival": false}), 1e-9)

	// Trusted yes-voter adds 0.03*weight.
	withAlly := self.voteScore(0.5, peers, PriorVotes{"Ally": true})
	assert.InDelta(t, base+0.03*0.81, withAlly, 1e-9)

	// Distrusted yes-voter subtracts 0.03*(1-weight).
	withRival := self.voteScore(0.5, peers, PriorVotes{"Rival": true})
	assert.InDelta(t, base-0.03*(1-0.10), withRival, 1e-9)

	// Midrange weight moves nothing: 0.6*0.75 = 0.45 sits between the bands.
	self.Trust["Ally"] = 0.6
	ally.Reputation = 0.75
	assert.InDelta(t, base, self.voteScore(0.5, peers, PriorVotes{"Ally": true}), 1e-9)
}

func TestVoteScoreUnknownPartyDefaultsNeutral(t *testing.T) {
	l, err := NewLegislator("Indep", ChamberSenate, Party("Reform"), 1.0, 0.0, false)
	require.NoError(t, err)
	l.IdeologicalSupport = 0.0

	// Empty stance table: party term = 0.30 * 1.0 * 0.5.
	assert.InDelta(t, 0.15, l.voteScore(Stances{}.StanceFor(l.Party), nil, PriorVotes{}), 1e-9)
}

func TestApprovalUpdateClamps(t *testing.T) {
	l, err := NewLegislator("L", ChamberHouse, PartyUnity, 0.8, 0.5, false)
	require.NoError(t, err)

	l.VoterApproval = 0.995
	l.updateVoterApproval(true)
	assert.InDelta(t, 1.0, l.VoterApproval, 1e-9)

	l.VoterApproval = 0.005
	l.updateVoterApproval(false)
	assert.Zero(t, l.VoterApproval)
}

func TestSnapshotVotes(t *testing.T) {
	a, err := NewLegislator("A", ChamberHouse, PartyUnity, 0.8, 0.5, false)
	require.NoError(t, err)
	b, err := NewLegislator("B", ChamberHouse, PartyUnity, 0.8, 0.5, false)
	require.NoError(t, err)
	a.VotedYesLastRound = true

	prior := SnapshotVotes([]*Legislator{a, b})

	assert.True(t, prior["A"])
	assert.False(t, prior["B"])

	// Mutating the agent afterwards must not change the snapshot.
	a.VotedYesLastRound = false
	assert.True(t, prior["A"])
}
