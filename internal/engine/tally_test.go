package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/capitol-sim/internal/agents"
)

func TestVoteTallyRecordVote(t *testing.T) {
	tally := NewVoteTally(agents.ChamberHouse)

	for i := 0; i < 3; i++ {
		tally.RecordVote(agents.PartyUnity, true)
	}
	for i := 0; i < 2; i++ {
		tally.RecordVote(agents.PartyUnity, false)
	}
	tally.RecordVote(agents.PartyProgress, true)

	assert.Equal(t, 4, tally.TotalYes)
	assert.Equal(t, 2, tally.TotalNo)
	assert.Equal(t, &PartyCount{Yes: 3, No: 2}, tally.PartyResults[agents.PartyUnity])
	assert.Equal(t, &PartyCount{Yes: 1, No: 0}, tally.PartyResults[agents.PartyProgress])

	recorded := 0
	for _, pc := range tally.PartyResults {
		recorded += pc.Yes + pc.No
	}
	assert.Equal(t, tally.TotalYes+tally.TotalNo, recorded)
}

func TestVoteTallyPassed(t *testing.T) {
	majority := NewVoteTally(agents.ChamberSenate)
	for i := 0; i < 3; i++ {
		majority.RecordVote(agents.PartyUnity, true)
	}
	for i := 0; i < 2; i++ {
		majority.RecordVote(agents.PartyHeritage, false)
	}
	assert.True(t, majority.Passed())

	tied := NewVoteTally(agents.ChamberSenate)
	tied.RecordVote(agents.PartyUnity, true)
	tied.RecordVote(agents.PartyUnity, true)
	tied.RecordVote(agents.PartyHeritage, false)
	tied.RecordVote(agents.PartyHeritage, false)
	assert.False(t, tied.Passed(), "a tie does not pass")
}
