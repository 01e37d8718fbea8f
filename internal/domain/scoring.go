package domain

// Scoring constants. StrengthScore lives on a 0-10 scale where 5 is neutral;
// votes set the base and linked evidence adds a bounded boost on top.
const (
	NeutralStrength  = 5.0
	MaxStrength      = 10.0
	MaxEvidenceBoost = 3.0

	// WinMargin is the minimum total-score lead required to declare a
	// winner; anything closer is a draw.
	WinMargin = 5.0

	// minConsensusVotes is the participation floor below which a round's
	// consensus is low regardless of scores.
	minConsensusVotes = 5

	// roundConsensusHigh is the mean strength above which a round with
	// enough votes grades high.
	roundConsensusHigh = 7.0

	// Fractions of high-consensus rounds that grade the overall debate.
	overallHighFraction     = 0.6
	overallModerateFraction = 0.3
)

// StrengthFromVotes maps the upvote ratio onto the 0-10 scale. No votes is
// neutral.
func StrengthFromVotes(upvotes, downvotes int) float64 {
	total := upvotes + downvotes
	if total == 0 {
		return NeutralStrength
	}
	return float64(upvotes) / float64(total) * MaxStrength
}

// EvidenceBoostFor converts an evidence item's confidence and relevance
// (both 0-100) into a strength boost. Confidence is weighted double, and the
// result is capped at MaxEvidenceBoost.
func EvidenceBoostFor(confidence, relevanceScore int) float64 {
	boost := float64(confidence)/100*2 + float64(relevanceScore)/100*1
	if boost > MaxEvidenceBoost {
		return MaxEvidenceBoost
	}
	return boost
}

// CombineStrength composes the vote-derived base with the accumulated
// evidence boost, clamped to the 0-10 scale.
func CombineStrength(base, evidenceBoost float64) float64 {
	score := base + evidenceBoost
	if score > MaxStrength {
		return MaxStrength
	}
	if score < 0 {
		return 0
	}
	return score
}

// ConsensusShift is the distance of a score from neutral: how far the latest
// vote has pushed the argument toward either pole.
func ConsensusShift(score float64) float64 {
	shift := score - NeutralStrength
	if shift < 0 {
		return -shift
	}
	return shift
}

// RoundConsensusLevel grades a round. The participation floor takes
// precedence: fewer than five votes is always low. With enough votes, a mean
// strength above 7 is high and anything else is moderate.
func RoundConsensusLevel(totalVotes int, meanStrength float64) ConsensusLevel {
	if totalVotes < minConsensusVotes {
		return ConsensusLow
	}
	if meanStrength > roundConsensusHigh {
		return ConsensusHigh
	}
	return ConsensusModerate
}

// OverallConsensusLevel grades the debate by the fraction of rounds that
// individually reached high consensus.
func OverallConsensusLevel(rounds []Round) ConsensusLevel {
	if len(rounds) == 0 {
		return ConsensusLow
	}
	high := 0
	for i := range rounds {
		if rounds[i].ConsensusLevel == ConsensusHigh {
			high++
		}
	}
	fraction := float64(high) / float64(len(rounds))
	switch {
	case fraction > overallHighFraction:
		return ConsensusHigh
	case fraction > overallModerateFraction:
		return ConsensusModerate
	default:
		return ConsensusLow
	}
}

// RoleTotal sums a side's standing across all rounds: each argument counts
// its strength score plus its net votes.
func RoleTotal(rounds []Round, role Role) float64 {
	total := 0.0
	for i := range rounds {
		for j := range rounds[i].Arguments {
			a := &rounds[i].Arguments[j]
			if a.Role != role {
				continue
			}
			total += a.StrengthScore + float64(a.Upvotes) - float64(a.Downvotes)
		}
	}
	return total
}

// DetermineWinner compares the two sides' totals. A lead smaller than
// WinMargin is a draw.
func DetermineWinner(rounds []Round) WinningPosition {
	proponent := RoleTotal(rounds, RoleProponent)
	opponent := RoleTotal(rounds, RoleOpponent)

	diff := proponent - opponent
	if diff < 0 {
		diff = -diff
	}
	if diff < WinMargin {
		return WinnerDraw
	}
	if proponent > opponent {
		return WinnerProponent
	}
	return WinnerOpponent
}
