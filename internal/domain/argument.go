package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies which side of the debate an argument advances.
type Role string

const (
	RoleProponent Role = "proponent"
	RoleOpponent  Role = "opponent"
)

// Opposing returns the other side.
func (r Role) Opposing() Role {
	if r == RoleProponent {
		return RoleOpponent
	}
	return RoleProponent
}

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

func ValidVoteType(s string) bool {
	return s == string(VoteUp) || s == string(VoteDown)
}

func ValidRole(s string) bool {
	return s == string(RoleProponent) || s == string(RoleOpponent)
}

// Argument is one turn in a debate round. Upvotes, Downvotes, EvidenceBoost
// and StrengthScore are derived state kept alongside the row so reads stay
// cheap; the formulas in scoring.go are the single source of truth for them.
type Argument struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   uuid.UUID  `json:"session_id"`
	SolutionID  uuid.UUID  `json:"solution_id"`
	Role        Role       `json:"role"`
	RoundNumber int        `json:"round_number"`
	Content     string     `json:"content"`
	RebuttalTo  *uuid.UUID `json:"rebuttal_to,omitempty"`

	EvidenceIDs   []uuid.UUID `json:"evidence_ids"`
	EvidenceBoost float64     `json:"evidence_boost"`
	StrengthScore float64     `json:"strength_score"`
	Upvotes       int         `json:"upvotes"`
	Downvotes     int         `json:"downvotes"`

	// Degraded marks placeholder content written after generation failed.
	Degraded bool `json:"degraded,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *Argument) TotalVotes() int {
	return a.Upvotes + a.Downvotes
}

func (a *Argument) HasEvidence(evidenceID uuid.UUID) bool {
	for _, id := range a.EvidenceIDs {
		if id == evidenceID {
			return true
		}
	}
	return false
}

// Vote is one user's recorded vote. The unique (user_id, argument_id) pair
// enforces one vote per user per argument.
type Vote struct {
	ID         uuid.UUID `json:"id"`
	ArgumentID uuid.UUID `json:"argument_id"`
	UserID     string    `json:"user_id"`
	VoteType   VoteType  `json:"vote_type"`
	CreatedAt  time.Time `json:"created_at"`
}
