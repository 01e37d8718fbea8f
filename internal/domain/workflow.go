package domain

import (
	"time"

	"github.com/google/uuid"
)

// Phase is one of the six workflow phases a session moves through, in order.
type Phase int

const (
	PhaseSetup Phase = iota + 1
	PhaseProblem
	PhaseSolutionGeneration
	PhaseDebate
	PhaseEvidence
	PhaseSummary
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseProblem:
		return "problem"
	case PhaseSolutionGeneration:
		return "solution_generation"
	case PhaseDebate:
		return "debate"
	case PhaseEvidence:
		return "evidence"
	case PhaseSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// phaseTransitions encodes the strictly linear phase order. Summary has no
// successor.
var phaseTransitions = map[Phase]Phase{
	PhaseSetup:              PhaseProblem,
	PhaseProblem:            PhaseSolutionGeneration,
	PhaseSolutionGeneration: PhaseDebate,
	PhaseDebate:             PhaseEvidence,
	PhaseEvidence:           PhaseSummary,
}

// NextPhase returns the successor phase, or false when the phase is terminal
// or unknown.
func NextPhase(p Phase) (Phase, bool) {
	next, ok := phaseTransitions[p]
	return next, ok
}

func ValidPhase(p int) bool {
	return p >= int(PhaseSetup) && p <= int(PhaseSummary)
}

type SessionStatus string

const (
	SessionDraft      SessionStatus = "draft"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// Session is a workflow session moving through the six phases.
type Session struct {
	ID              uuid.UUID     `json:"id"`
	CurrentPhase    Phase         `json:"current_phase"`
	CompletedPhases []int         `json:"completed_phases"`
	Status          SessionStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (s *Session) HasCompletedPhase(phase int) bool {
	for _, p := range s.CompletedPhases {
		if p == phase {
			return true
		}
	}
	return false
}
