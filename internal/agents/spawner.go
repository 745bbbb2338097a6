// Legislator spawning — creates the initial population with traits,
// party/chamber assignment, and the special-interest capture draw.
package agents

import (
	"fmt"
	"sort"

	"github.com/talgya/capitol-sim/internal/entropy"
)

// DefaultCaptureProb is the chance a spawned legislator is captured by
// a special interest.
const DefaultCaptureProb = 0.10

// Spawner creates legislators for a simulation run. All draws go
// through the provided entropy source so populations are reproducible
// from a seed.
type Spawner struct {
	rng         entropy.Source
	captureProb float64
	used        map[string]bool
}

// NewSpawner creates a spawner. A captureProb of zero disables capture
// entirely; pass DefaultCaptureProb for the standard rate.
func NewSpawner(rng entropy.Source, captureProb float64) *Spawner {
	return &Spawner{
		rng:         rng,
		captureProb: captureProb,
		used:        make(map[string]bool),
	}
}

// SpawnChamber creates the members of one chamber from a party → seat
// count map. Parties are processed in sorted order so a fixed seed
// always yields the same population.
func (s *Spawner) SpawnChamber(chamber Chamber, seats map[Party]int) ([]*Legislator, error) {
	parties := make([]Party, 0, len(seats))
	for p := range seats {
		parties = append(parties, p)
	}
	sort.Slice(parties, func(i, j int) bool { return parties[i] < parties[j] })

	var members []*Legislator
	for _, party := range parties {
		for i := 0; i < seats[party]; i++ {
			l, err := s.spawnOne(chamber, party)
			if err != nil {
				return nil, err
			}
			members = append(members, l)
		}
	}
	return members, nil
}

func (s *Spawner) spawnOne(chamber Chamber, party Party) (*Legislator, error) {
	// Loyalty lives in the upper half by construction: nobody gets a
	// seat without at least lukewarm commitment to the party.
	loyalty := 0.5 + s.rng.Float64()*0.5
	concern := s.rng.Float64()
	captured := s.rng.Float64() < s.captureProb

	return NewLegislator(s.generateName(), chamber, party, loyalty, concern, captured)
}

// generateName draws a unique name from the pools, falling back to a
// numbered suffix if the pools run dry.
func (s *Spawner) generateName() string {
	for attempt := 0; attempt < 50; attempt++ {
		name := firstNames[s.rng.Intn(len(firstNames))] + " " + lastNames[s.rng.Intn(len(lastNames))]
		if !s.used[name] {
			s.used[name] = true
			return name
		}
	}
	base := firstNames[s.rng.Intn(len(firstNames))] + " " + lastNames[s.rng.Intn(len(lastNames))]
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s %d", base, n)
		if !s.used[name] {
			s.used[name] = true
			return name
		}
	}
}

var firstNames = []string{
	"Abigail", "Amos", "Beatrice", "Calvin", "Cora", "Dalton", "Edith",
	"Elias", "Florence", "Gideon", "Harriet", "Hollis", "Imogen", "Jasper",
	"June", "Leland", "Mabel", "Miles", "Nora", "Orson", "Pearl", "Quincy",
	"Rosalind", "Rufus", "Sylvia", "Thaddeus", "Una", "Vernon", "Wilhelmina",
	"Zachary",
}

var lastNames = []string{
	"Aldrich", "Barlow", "Calloway", "Danforth", "Ellsworth", "Fairbanks",
	"Granger", "Hargrove", "Ingram", "Jessup", "Kendrick", "Lockhart",
	"Mercer", "Norwood", "Ogden", "Pemberton", "Quimby", "Rutledge",
	"Sinclair", "Thorne", "Underhill", "Vance", "Whitfield", "Yates",
	"Zimmerman", "Ashford", "Blackwood", "Crane", "Dunmore", "Everhart",
	"Falkner", "Greeley", "Holloway", "Irons", "Kirkland", "Lattimer",
	"Marlowe", "Nichols", "Osgood", "Prescott",
}
