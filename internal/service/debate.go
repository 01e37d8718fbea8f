package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/openagora/agora/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrInvalidRoundCount = errors.New("round_count must be at least 1")
	ErrDebateNotFound    = errors.New("no debate found for session")
)

const maxRoundCount = 10

// DebateService orchestrates live debates and rebuilds them from storage.
// An in-memory DebateSession is a disposable cache: every derived field is
// recomputable from stored arguments, evidence and votes.
type DebateService struct {
	arguments domain.ArgumentStore
	votes     domain.VoteStore
	evidence  domain.EvidenceStore
	rounds    domain.RoundStore
	conductor *RoundConductor
	logger    *zap.Logger
}

func NewDebateService(as domain.ArgumentStore, vs domain.VoteStore, es domain.EvidenceStore, rs domain.RoundStore, conductor *RoundConductor, logger *zap.Logger) *DebateService {
	return &DebateService{
		arguments: as,
		votes:     vs,
		evidence:  es,
		rounds:    rs,
		conductor: conductor,
		logger:    logger,
	}
}

// StartDebate runs roundCount rounds sequentially: each round's opponent
// argument depends on that round's proponent argument, and each later round
// rebuts the one before it. Once every round completes, the overall
// consensus and winning position are derived.
func (s *DebateService) StartDebate(ctx context.Context, sessionID, solutionID uuid.UUID, solution string, roundCount int) (*domain.DebateSession, error) {
	if roundCount < 1 || roundCount > maxRoundCount {
		return nil, ErrInvalidRoundCount
	}
	if solution == "" {
		solution = fmt.Sprintf("Solution %s", solutionID)
	}

	session := &domain.DebateSession{
		SessionID:  sessionID,
		SolutionID: solutionID,
		Status:     domain.DebateActive,
	}

	for n := 1; n <= roundCount; n++ {
		round, err := s.conductor.ConductRound(ctx, sessionID, solutionID, n, solution, session.Rounds)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", n, err)
		}
		session.Rounds = append(session.Rounds, *round)

		s.logger.Info("round completed",
			zap.String("session_id", sessionID.String()),
			zap.Int("round", n),
			zap.String("consensus", string(round.ConsensusLevel)))
	}

	finalizeSession(session)
	return session, nil
}

// GetDebateSession rebuilds the full debate view from persisted arguments,
// evidence and votes. It is a pure function of stored state: two calls with
// no intervening writes produce identical derived results.
func (s *DebateService) GetDebateSession(ctx context.Context, sessionID uuid.UUID) (*domain.DebateSession, error) {
	arguments, err := s.arguments.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(arguments) == 0 {
		return nil, ErrDebateNotFound
	}

	evidence, err := s.evidence.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	records, err := s.rounds.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return reconstruct(sessionID, arguments, evidence, records), nil
}

// ListVotes exposes the raw vote rows behind an argument's counters.
func (s *DebateService) ListVotes(ctx context.Context, argumentID uuid.UUID) ([]domain.Vote, error) {
	return s.votes.ListByArgument(ctx, argumentID)
}

// reconstruct regroups arguments into rounds and recomputes every derived
// field with the same formulas the live path uses. Strength scores are
// recomputed from stored vote counters and the evidence items actually
// linked, never read back from the live path's writes.
func reconstruct(sessionID uuid.UUID, arguments []domain.Argument, evidence []domain.Evidence, records []domain.RoundRecord) *domain.DebateSession {
	evidenceByID := make(map[uuid.UUID]domain.Evidence, len(evidence))
	for _, e := range evidence {
		evidenceByID[e.ID] = e
	}

	summaries := make(map[int]string, len(records))
	for _, r := range records {
		summaries[r.RoundNumber] = r.Summary
	}

	byRound := make(map[int][]domain.Argument)
	for _, a := range arguments {
		boost := 0.0
		for _, evID := range a.EvidenceIDs {
			if e, ok := evidenceByID[evID]; ok {
				boost += domain.EvidenceBoostFor(e.Confidence, e.RelevanceScore)
			}
		}
		a.EvidenceBoost = boost
		a.StrengthScore = domain.CombineStrength(
			domain.StrengthFromVotes(a.Upvotes, a.Downvotes), boost)
		byRound[a.RoundNumber] = append(byRound[a.RoundNumber], a)
	}

	numbers := make([]int, 0, len(byRound))
	for n := range byRound {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	session := &domain.DebateSession{
		SessionID: sessionID,
		Status:    domain.DebateActive,
	}

	for _, n := range numbers {
		args := byRound[n]
		if session.SolutionID == uuid.Nil {
			session.SolutionID = args[0].SolutionID
		}

		round := domain.Round{
			RoundNumber: n,
			Arguments:   args,
			Completed:   hasBothRoles(args),
		}
		round.ConsensusLevel = domain.RoundConsensusLevel(round.TotalVotes(), round.MeanStrength())
		if summary, ok := summaries[n]; ok && summary != "" {
			round.Summary = summary
		} else {
			round.Summary = fmt.Sprintf("Round %d concluded with %d arguments exchanged. Current consensus level: %s.",
				n, len(args), round.ConsensusLevel)
		}
		session.Rounds = append(session.Rounds, round)
	}

	finalizeSession(session)
	return session
}

// finalizeSession derives the session-level fields shared by the live and
// reconstruction paths. The winner is set only once all rounds completed.
func finalizeSession(session *domain.DebateSession) {
	session.TotalVotes = 0
	for i := range session.Rounds {
		session.TotalVotes += session.Rounds[i].TotalVotes()
	}
	session.OverallConsensus = domain.OverallConsensusLevel(session.Rounds)

	if session.AllRoundsCompleted() {
		session.WinningPosition = domain.DetermineWinner(session.Rounds)
		session.Status = domain.DebateCompleted
	} else {
		session.WinningPosition = ""
		session.Status = domain.DebateActive
	}
}

func hasBothRoles(args []domain.Argument) bool {
	var proponent, opponent bool
	for i := range args {
		switch args[i].Role {
		case domain.RoleProponent:
			proponent = true
		case domain.RoleOpponent:
			opponent = true
		}
	}
	return proponent && opponent
}
