// Package agents provides the legislator data model, the vote decision
// function, and the pairwise trust dynamics that drive it.
package agents

import (
	"fmt"
)

// Chamber identifies which half of the legislature an agent sits in.
type Chamber uint8

const (
	ChamberHouse  Chamber = 0
	ChamberSenate Chamber = 1
)

// String returns the display name of a chamber.
func (c Chamber) String() string {
	switch c {
	case ChamberHouse:
		return "House"
	case ChamberSenate:
		return "Senate"
	default:
		return fmt.Sprintf("Chamber(%d)", uint8(c))
	}
}

// ParseChamber converts a config string into a Chamber.
func ParseChamber(s string) (Chamber, error) {
	switch s {
	case "house", "House":
		return ChamberHouse, nil
	case "senate", "Senate":
		return ChamberSenate, nil
	default:
		return 0, fmt.Errorf("unknown chamber %q", s)
	}
}

// Party is an open set of party labels. Three are predefined but any
// label found in a stance table or seat map is accepted.
type Party string

const (
	PartyUnity    Party = "Unity"
	PartyProgress Party = "Progress"
	PartyHeritage Party = "Heritage"
)

// Scoring model constants. The weighted terms deliberately sum to less
// than 1.0 — the remainder of the score budget is filled by the trust,
// lobby, and capture terms, so the final score is not a weighted average.
const (
	weightParty  = 0.30
	weightBelief = 0.25
	weightSelf   = 0.15

	trustTermScale   = 0.03
	trustBonusFloor  = 0.7
	trustPenaltyCeil = 0.3

	captureBonus  = 0.05
	voteThreshold = 0.5
	neutralStance = 0.5

	approvalStep = 0.01
)

// Trust dynamics constants.
const (
	dealTrustGain        = 0.10
	dealReputationGain   = 0.01
	betrayReputationLoss = 0.05
)

// initialTrust is the trust every pair of legislators starts with.
const initialTrust = 0.5

// Legislator is a voting agent: static traits drawn at creation,
// round-scoped inputs overwritten every round, and evolving state that
// compounds across rounds.
type Legislator struct {
	Name    string  `json:"name"`
	Chamber Chamber `json:"chamber"`
	Party   Party   `json:"party"`

	// Static traits — fixed at creation, validated rather than clamped.
	PartyLoyalty      float64 `json:"party_loyalty"`      // 0.5–1.0
	ReelectionConcern float64 `json:"reelection_concern"` // 0.0–1.0
	Captured          bool    `json:"captured"`           // special-interest capture

	// Round-scoped inputs — overwritten, never accumulated, each round.
	IdeologicalSupport float64 `json:"ideological_support"` // 0.0–1.0
	LobbyPressure      float64 `json:"lobby_pressure"`      // signed

	// VotedYesLastRound is read by peers during the current round and
	// only overwritten once the agent itself decides. False before the
	// first round.
	VotedYesLastRound bool `json:"voted_yes_last_round"`

	// Evolving state — persists across rounds, clamped after every mutation.
	Reputation    float64 `json:"reputation"`     // 0.0–1.0
	VoterApproval float64 `json:"voter_approval"` // 0.0–1.0

	// Trust held toward every other legislator, keyed by name. Directed:
	// an agent's view of a peer is independent of the peer's view back.
	Trust map[string]float64 `json:"trust"`
}

// NewLegislator validates traits and returns a legislator with neutral
// evolving state. The trust map is populated later by InitializeTrust,
// once the full population exists.
func NewLegislator(name string, chamber Chamber, party Party, loyalty, concern float64, captured bool) (*Legislator, error) {
	if name == "" {
		return nil, fmt.Errorf("legislator name must not be empty")
	}
	if loyalty < 0.5 || loyalty > 1.0 {
		return nil, fmt.Errorf("party loyalty %.3f outside [0.5, 1.0] for %s", loyalty, name)
	}
	if concern < 0 || concern > 1.0 {
		return nil, fmt.Errorf("reelection concern %.3f outside [0.0, 1.0] for %s", concern, name)
	}

	return &Legislator{
		Name:              name,
		Chamber:           chamber,
		Party:             party,
		PartyLoyalty:      loyalty,
		ReelectionConcern: concern,
		Captured:          captured,
		Reputation:        0.5,
		VoterApproval:     0.5,
		Trust:             make(map[string]float64),
	}, nil
}

// InitializeTrust gives every legislator a neutral trust entry for every
// other legislator. Called once after the full population is assembled;
// the population is fixed for the rest of the run.
func InitializeTrust(population []*Legislator) {
	for _, a := range population {
		if a.Trust == nil {
			a.Trust = make(map[string]float64, len(population)-1)
		}
		for _, b := range population {
			if a == b {
				continue
			}
			a.Trust[b.Name] = initialTrust
		}
	}
}

// TrustToward returns the trust this legislator holds toward the named
// peer, or zero if no entry exists.
func (l *Legislator) TrustToward(name string) float64 {
	return l.Trust[name]
}

// clamp01 bounds a scalar to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
