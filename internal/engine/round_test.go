package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/capitol-sim/internal/agents"
	"github.com/talgya/capitol-sim/internal/entropy"
	"github.com/talgya/capitol-sim/internal/lobby"
)

// fixedSource returns the same float on every draw and always picks
// index 0, letting tests pin the stochastic phases.
type fixedSource struct {
	f float64
}

func (s fixedSource) Float64() float64 { return s.f }
func (s fixedSource) Intn(n int) int   { return 0 }

func mustLegislator(t *testing.T, name string, chamber agents.Chamber, party agents.Party, loyalty, concern float64) *agents.Legislator {
	t.Helper()
	l, err := agents.NewLegislator(name, chamber, party, loyalty, concern, false)
	require.NoError(t, err)
	return l
}

// TestVotePhaseUsesPriorRoundSnapshot pins the consistency requirement:
// an agent deciding early in a round must not leak its current-round
// vote to peers deciding later. A votes yes in round one; B trusts A
// heavily, and would flip to yes if it saw A's round-one vote. B must
// stay no in round one and flip only in round two.
func TestVotePhaseUsesPriorRoundSnapshot(t *testing.T) {
	a := mustLegislator(t, "A", agents.ChamberHouse, agents.PartyUnity, 1.0, 0.0)
	b := mustLegislator(t, "B", agents.ChamberHouse, agents.PartyProgress, 0.7, 0.7)
	c := mustLegislator(t, "C", agents.ChamberSenate, agents.PartyUnity, 1.0, 0.0)
	pop := []*agents.Legislator{a, b, c}
	agents.InitializeTrust(pop)

	// B sees A as a proven ally: weight 1.0*0.9 crosses the bonus band.
	b.Trust["A"] = 1.0
	a.Reputation = 0.9
	// Keep B's view of C in the neutral band so only A's vote matters.
	b.Trust["C"] = 0.7

	// Ideology pinned at 0.9 for everyone; the same 0.9 fails the deal
	// and betrayal draws, so the social phase stays quiet.
	sess := NewSession(pop, fixedSource{f: 0.9}, DefaultTuning(), lobby.Table{}, nil)

	bill := Bill{
		Title:   "Test Bill",
		Stances: agents.Stances{agents.PartyUnity: 1.0, agents.PartyProgress: 1.0},
	}

	// Round one: A scores 0.30 + 0.225 = 0.525 → yes. B's base score is
	// 0.21 + 0.225 + 0.0525 = 0.4875: below threshold without the ally
	// bonus, above it with. Cold start means no peer voted yes last
	// round, so B must vote no even though A already voted yes today.
	r1 := sess.RunRound(bill)
	assert.Equal(t, 1, r1.House.TotalYes)
	assert.Equal(t, 1, r1.House.TotalNo)
	assert.Equal(t, 1, r1.Senate.TotalYes)
	assert.False(t, r1.Passed, "house tie fails the bill")

	// Round two: the snapshot now carries A's yes, and the ally bonus
	// lifts B over the threshold.
	r2 := sess.RunRound(bill)
	assert.Equal(t, 2, r2.House.TotalYes)
	assert.Equal(t, 0, r2.House.TotalNo)
	assert.True(t, r2.Passed)
}

func TestRunRoundDeterministic(t *testing.T) {
	build := func(seed int64) (*Session, []Bill) {
		spawner := agents.NewSpawner(entropy.Seeded(seed+300), agents.DefaultCaptureProb)
		house, err := spawner.SpawnChamber(agents.ChamberHouse, map[agents.Party]int{
			agents.PartyUnity: 8, agents.PartyProgress: 7, agents.PartyHeritage: 5,
		})
		require.NoError(t, err)
		senate, err := spawner.SpawnChamber(agents.ChamberSenate, map[agents.Party]int{
			agents.PartyUnity: 4, agents.PartyProgress: 3, agents.PartyHeritage: 3,
		})
		require.NoError(t, err)
		pop := append(house, senate...)
		agents.InitializeTrust(pop)

		bills := GenerateBills(entropy.Seeded(seed+100),
			[]agents.Party{agents.PartyUnity, agents.PartyProgress, agents.PartyHeritage}, 5)

		drift := lobby.NewDrift(seed+1, 0.05)
		return NewSession(pop, entropy.Seeded(seed), DefaultTuning(), lobby.Table{}, drift), bills
	}

	s1, bills1 := build(99)
	s2, bills2 := build(99)
	require.Equal(t, bills1, bills2)

	for i := range bills1 {
		r1 := s1.RunRound(bills1[i])
		r2 := s2.RunRound(bills2[i])
		assert.Equal(t, r1.House.TotalYes, r2.House.TotalYes, "round %d", i+1)
		assert.Equal(t, r1.House.TotalNo, r2.House.TotalNo, "round %d", i+1)
		assert.Equal(t, r1.Senate.TotalYes, r2.Senate.TotalYes, "round %d", i+1)
		assert.Equal(t, r1.Senate.TotalNo, r2.Senate.TotalNo, "round %d", i+1)
		assert.Equal(t, r1.Passed, r2.Passed, "round %d", i+1)
	}
	assert.Equal(t, s1.StatsSnapshot(), s2.StatsSnapshot())
}

func TestRunRoundOverwritesRoundState(t *testing.T) {
	a := mustLegislator(t, "A", agents.ChamberHouse, agents.PartyUnity, 0.8, 0.5)
	b := mustLegislator(t, "B", agents.ChamberSenate, agents.PartyProgress, 0.8, 0.5)
	pop := []*agents.Legislator{a, b}
	agents.InitializeTrust(pop)

	// Stale values from a hypothetical previous round must be replaced,
	// not accumulated.
	a.IdeologicalSupport = 5.0
	a.LobbyPressure = 9.9

	table := lobby.Table{agents.PartyUnity: 0.04}
	sess := NewSession(pop, fixedSource{f: 0.9}, DefaultTuning(), table, nil)
	sess.RunRound(Bill{Title: "B1", Stances: agents.Stances{}})

	assert.InDelta(t, 0.9, a.IdeologicalSupport, 1e-9)
	assert.InDelta(t, 0.04, a.LobbyPressure, 1e-9)
	assert.Zero(t, b.LobbyPressure, "unmapped party gets zero pressure")
}

func TestSocialPhaseNeverTargetsSelf(t *testing.T) {
	a := mustLegislator(t, "A", agents.ChamberHouse, agents.PartyUnity, 0.8, 0.5)
	b := mustLegislator(t, "B", agents.ChamberHouse, agents.PartyProgress, 0.8, 0.5)
	pop := []*agents.Legislator{a, b}
	agents.InitializeTrust(pop)

	// Zero draws make every deal and betrayal check fire every round.
	sess := NewSession(pop, fixedSource{f: 0.0}, DefaultTuning(), lobby.Table{}, nil)
	sess.RunRound(Bill{Title: "B1", Stances: agents.Stances{}})

	stats := sess.StatsSnapshot()
	assert.Equal(t, 2, stats.Deals)
	assert.Equal(t, 2, stats.Betrayals)
	for _, l := range pop {
		_, hasSelf := l.Trust[l.Name]
		assert.False(t, hasSelf)
		for _, v := range l.Trust {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestRunRoundBothChambersMustPass(t *testing.T) {
	// House is unanimously for, Senate unanimously against.
	pop := []*agents.Legislator{
		mustLegislator(t, "H1", agents.ChamberHouse, agents.PartyUnity, 1.0, 0.0),
		mustLegislator(t, "H2", agents.ChamberHouse, agents.PartyUnity, 1.0, 0.0),
		mustLegislator(t, "S1", agents.ChamberSenate, agents.PartyHeritage, 1.0, 0.0),
		mustLegislator(t, "S2", agents.ChamberSenate, agents.PartyHeritage, 1.0, 0.0),
	}
	agents.InitializeTrust(pop)

	sess := NewSession(pop, fixedSource{f: 0.9}, DefaultTuning(), lobby.Table{}, nil)
	result := sess.RunRound(Bill{
		Title:   "Split Bill",
		Stances: agents.Stances{agents.PartyUnity: 1.0, agents.PartyHeritage: 0.0},
	})

	assert.True(t, result.House.Passed())
	assert.False(t, result.Senate.Passed())
	assert.False(t, result.Passed, "one chamber is not enough")

	stats := sess.StatsSnapshot()
	assert.Equal(t, 1, stats.RoundsRun)
	assert.Equal(t, 0, stats.BillsPassed)
	assert.Equal(t, 1, stats.BillsFailed)
}

func TestRunRoundRecordsResultsAndEvents(t *testing.T) {
	pop := []*agents.Legislator{
		mustLegislator(t, "H1", agents.ChamberHouse, agents.PartyUnity, 1.0, 0.0),
		mustLegislator(t, "S1", agents.ChamberSenate, agents.PartyUnity, 1.0, 0.0),
	}
	agents.InitializeTrust(pop)

	sess := NewSession(pop, fixedSource{f: 0.9}, DefaultTuning(), lobby.Table{}, nil)
	result := sess.RunRound(Bill{Title: "B1", Stances: agents.Stances{agents.PartyUnity: 1.0}})

	assert.True(t, result.Passed)
	require.Len(t, sess.ResultsSnapshot(), 1)
	assert.Equal(t, result, sess.ResultsSnapshot()[0])

	events := sess.RecentEvents(10)
	require.NotEmpty(t, events)
	assert.Equal(t, "political", events[len(events)-1].Category)
	assert.Contains(t, events[len(events)-1].Description, "B1 passes")
}

func TestGenerateBillsDeterministicAndBounded(t *testing.T) {
	parties := []agents.Party{agents.PartyProgress, agents.PartyUnity}

	a := GenerateBills(entropy.Seeded(5), parties, 10)
	b := GenerateBills(entropy.Seeded(5), parties, 10)
	assert.Equal(t, a, b)

	for _, bill := range a {
		assert.NotEmpty(t, bill.Title)
		require.Len(t, bill.Stances, 2)
		for _, stance := range bill.Stances {
			assert.GreaterOrEqual(t, stance, 0.0)
			assert.Less(t, stance, 1.0)
		}
	}
}
