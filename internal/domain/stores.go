package domain

import (
	"context"

	"github.com/google/uuid"
)

// VoteApplication is the post-vote state returned by the store after the
// atomic duplicate check, vote insert and counter increment.
type VoteApplication struct {
	Upvotes       int
	Downvotes     int
	EvidenceBoost float64
	StrengthScore float64
}

type ArgumentStore interface {
	Create(ctx context.Context, a *Argument) error
	GetByID(ctx context.Context, id uuid.UUID) (*Argument, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Argument, error)
	// ApplyVote performs the duplicate check, vote insert, counter increment
	// and strength recompute as one indivisible operation. It returns
	// store.ErrDuplicateVote without mutating anything when the user already
	// voted on the argument.
	ApplyVote(ctx context.Context, argumentID uuid.UUID, userID string, voteType VoteType) (*VoteApplication, error)
	// LinkEvidence appends the evidence id to the argument's evidence set and
	// applies the boost exactly once; a repeat link is a no-op reported via
	// the returned alreadyLinked flag.
	LinkEvidence(ctx context.Context, argumentID, evidenceID uuid.UUID, boost float64) (alreadyLinked bool, err error)
	// DeleteByRound discards a partial round so a cancelled round can be
	// fully retried instead of merged with stale output.
	DeleteByRound(ctx context.Context, sessionID, solutionID uuid.UUID, roundNumber int) error
}

type VoteStore interface {
	ListByArgument(ctx context.Context, argumentID uuid.UUID) ([]Vote, error)
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
}

type EvidenceStore interface {
	Create(ctx context.Context, e *Evidence) error
	GetByID(ctx context.Context, id uuid.UUID) (*Evidence, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Evidence, error)
}

// RoundRecord persists the non-derivable parts of a round: the prose summary
// and the completion marker. Scores and consensus are always recomputed.
type RoundRecord struct {
	SessionID   uuid.UUID
	SolutionID  uuid.UUID
	RoundNumber int
	Summary     string
	Completed   bool
}

type RoundStore interface {
	Upsert(ctx context.Context, r *RoundRecord) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]RoundRecord, error)
}

type SessionStore interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	Update(ctx context.Context, s *Session) error
}

// Generator is the text-producing collaborator. Calls are long-latency and
// may fail; callers bound them with a deadline and degrade to templated
// content rather than aborting a round.
type Generator interface {
	GenerateArgument(ctx context.Context, role Role, solution, opposing string, roundNumber int) (string, error)
	GatherEvidence(ctx context.Context, claim string) (*Evidence, error)
	SummarizeRound(ctx context.Context, round *Round) (string, error)
}

// ClaimExtractor pulls candidate factual claims out of argument text. The
// default implementation is a hedge-phrase heuristic; it is an interface so
// tests and callers can substitute a deterministic strategy.
type ClaimExtractor interface {
	Extract(text string) []string
}
