// Package lobby provides lobbying-pressure providers: fixed per-party
// tables and a smoothly drifting "political weather" layer generated
// from simplex noise.
package lobby

import (
	"hash/fnv"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/capitol-sim/internal/agents"
)

// Influence maps a party to a signed pressure scalar applied to every
// member's vote score. Unmapped parties read as zero pressure.
type Influence interface {
	PressureFor(party agents.Party) float64
}

// Table is a fixed party → pressure lookup.
type Table map[agents.Party]float64

// PressureFor returns the configured pressure, zero for unmapped parties.
func (t Table) PressureFor(party agents.Party) float64 {
	return t[party]
}

// Drift generates per-party pressure that wanders smoothly from round
// to round. Each party follows its own lane through a shared noise
// field, so pressures are correlated in time but independent across
// parties. Deterministic for a given seed.
type Drift struct {
	noise     opensimplex.Noise
	amplitude float64
	frequency float64
}

// NewDrift creates a drift layer. Amplitude bounds the output to
// [-amplitude, +amplitude]; zero amplitude yields zero pressure
// everywhere.
func NewDrift(seed int64, amplitude float64) *Drift {
	return &Drift{
		noise:     opensimplex.NewNormalized(seed),
		amplitude: amplitude,
		frequency: 0.15,
	}
}

// At samples the drift for a party at a round index.
func (d *Drift) At(round int, party agents.Party) float64 {
	if d.amplitude == 0 {
		return 0
	}
	v := d.noise.Eval2(float64(round)*d.frequency, partyLane(party))
	return (v - 0.5) * 2 * d.amplitude
}

// ForRound fixes the round index, yielding a plain Influence view.
func (d *Drift) ForRound(round int) Influence {
	return driftRound{d: d, round: round}
}

type driftRound struct {
	d     *Drift
	round int
}

func (r driftRound) PressureFor(party agents.Party) float64 {
	return r.d.At(r.round, party)
}

// partyLane hashes a party name to a stable y-coordinate in the noise
// field, spaced far enough apart that lanes are uncorrelated.
func partyLane(party agents.Party) float64 {
	h := fnv.New32a()
	h.Write([]byte(party))
	return float64(h.Sum32()%1024) * 7.3
}

// Layer sums several providers into one. Used to stack a configured
// base table with the drift layer.
func Layer(providers ...Influence) Influence {
	return layered(providers)
}

type layered []Influence

func (l layered) PressureFor(party agents.Party) float64 {
	total := 0.0
	for _, p := range l {
		total += p.PressureFor(party)
	}
	return total
}
