package domain

// ConsensusLevel grades how settled a round (or a whole debate) is.
type ConsensusLevel string

const (
	ConsensusLow      ConsensusLevel = "low"
	ConsensusModerate ConsensusLevel = "moderate"
	ConsensusHigh     ConsensusLevel = "high"
)

// Round groups the two arguments exchanged in one numbered turn of the
// debate, plus the derived summary and consensus grade.
type Round struct {
	RoundNumber    int            `json:"round_number"`
	Arguments      []Argument     `json:"arguments"`
	Summary        string         `json:"summary"`
	ConsensusLevel ConsensusLevel `json:"consensus_level"`
	Completed      bool           `json:"completed"`
}

// ArgumentByRole returns the round's argument for the given role, or nil.
func (r *Round) ArgumentByRole(role Role) *Argument {
	for i := range r.Arguments {
		if r.Arguments[i].Role == role {
			return &r.Arguments[i]
		}
	}
	return nil
}

func (r *Round) TotalVotes() int {
	total := 0
	for i := range r.Arguments {
		total += r.Arguments[i].TotalVotes()
	}
	return total
}

// MeanStrength is the average strength score across the round's arguments,
// or neutral when the round is empty.
func (r *Round) MeanStrength() float64 {
	if len(r.Arguments) == 0 {
		return NeutralStrength
	}
	sum := 0.0
	for i := range r.Arguments {
		sum += r.Arguments[i].StrengthScore
	}
	return sum / float64(len(r.Arguments))
}
