// Bill definitions and the random bill generator used when no docket
// is configured.
package engine

import (
	"fmt"
	"sort"

	"github.com/talgya/capitol-sim/internal/agents"
	"github.com/talgya/capitol-sim/internal/entropy"
)

// Bill is one item on the docket: a display title and a per-party
// stance table. The title is used only for logging and reporting.
type Bill struct {
	Title   string         `json:"title"`
	Stances agents.Stances `json:"stances"`
}

var billSubjects = []string{
	"Rural Broadband Expansion",
	"Harbor Dredging Appropriations",
	"Teacher Pension Reform",
	"Railway Modernization",
	"Clean Water Standards",
	"Small Business Tax Relief",
	"Veterans Housing",
	"Grid Resilience",
	"Public Lands Access",
	"Election Infrastructure",
	"Flood Insurance Renewal",
	"Apprenticeship Incentives",
	"Hospital Funding",
	"Port Security",
	"Crop Insurance",
}

// GenerateBills produces a docket of n bills with random per-party
// stances drawn from the given source. Parties are iterated in sorted
// order so a fixed seed yields a fixed docket.
func GenerateBills(rng entropy.Source, parties []agents.Party, n int) []Bill {
	sorted := make([]agents.Party, len(parties))
	copy(sorted, parties)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	bills := make([]Bill, 0, n)
	for i := 0; i < n; i++ {
		stances := make(agents.Stances, len(sorted))
		for _, p := range sorted {
			stances[p] = rng.Float64()
		}
		subject := billSubjects[rng.Intn(len(billSubjects))]
		bills = append(bills, Bill{
			Title:   fmt.Sprintf("H.R. %d — %s Act", 100+i, subject),
			Stances: stances,
		})
	}
	return bills
}
