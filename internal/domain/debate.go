package domain

import "github.com/google/uuid"

// WinningPosition is the outcome of a completed debate. It is empty while
// any round remains incomplete.
type WinningPosition string

const (
	WinnerProponent WinningPosition = "proponent"
	WinnerOpponent  WinningPosition = "opponent"
	WinnerDraw      WinningPosition = "draw"
)

type DebateStatus string

const (
	DebateActive    DebateStatus = "active"
	DebateCompleted DebateStatus = "completed"
	DebatePaused    DebateStatus = "paused"
)

// DebateSession is the assembled view of one solution's debate. It is a
// disposable aggregate: every derived field is recomputable from the stored
// arguments, evidence and votes, so it is never persisted as a whole.
type DebateSession struct {
	SessionID  uuid.UUID `json:"session_id"`
	SolutionID uuid.UUID `json:"solution_id"`
	Rounds     []Round   `json:"rounds"`

	TotalVotes       int             `json:"total_votes"`
	OverallConsensus ConsensusLevel  `json:"overall_consensus"`
	WinningPosition  WinningPosition `json:"winning_position,omitempty"`
	Status           DebateStatus    `json:"status"`
}

func (s *DebateSession) AllRoundsCompleted() bool {
	if len(s.Rounds) == 0 {
		return false
	}
	for i := range s.Rounds {
		if !s.Rounds[i].Completed {
			return false
		}
	}
	return true
}
