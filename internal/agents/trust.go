// Pairwise trust dynamics — deals build trust gradually, betrayal
// destroys it outright.
package agents

// MakeDeal raises mutual trust between the initiator and the target and
// gives the initiator a small reputation bump for being seen as someone
// who delivers. Self-deals are ignored.
func MakeDeal(initiator, target *Legislator) {
	if initiator == target || initiator.Name == target.Name {
		return
	}
	initiator.Trust[target.Name] = clamp01(initiator.Trust[target.Name] + dealTrustGain)
	target.Trust[initiator.Name] = clamp01(target.Trust[initiator.Name] + dealTrustGain)
	initiator.Reputation = clamp01(initiator.Reputation + dealReputationGain)
}

// Betray wipes out trust in both directions and costs the betrayer
// reputation. The severity is asymmetric to deals: trust collapses to
// zero regardless of how high it was. The target's own reputation is
// untouched — the damage to them flows through the vote-weighting
// mechanism, not their standing. Self-betrayal is ignored.
func Betray(betrayer, target *Legislator) {
	if betrayer == target || betrayer.Name == target.Name {
		return
	}
	betrayer.Trust[target.Name] = 0
	target.Trust[betrayer.Name] = 0
	betrayer.Reputation = clamp01(betrayer.Reputation - betrayReputationLoss)
}
