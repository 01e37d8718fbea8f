package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/openagora/agora/internal/domain"
	"github.com/openagora/agora/internal/llm"
	"go.uber.org/zap"
)

type debateFixture struct {
	service   *DebateService
	arguments *mockArgumentStore
	votes     *mockVoteStore
	evidence  *mockEvidenceStore
	rounds    *mockRoundStore
	client    *llm.MockClient
}

func newDebateFixture(extractor domain.ClaimExtractor) *debateFixture {
	f := &debateFixture{
		arguments: newMockArgumentStore(),
		votes:     newMockVoteStore(),
		evidence:  newMockEvidenceStore(),
		rounds:    newMockRoundStore(),
		client:    llm.NewMockClient(),
	}
	conductor := NewRoundConductor(f.arguments, f.evidence, f.rounds, f.client, extractor, zap.NewNop())
	conductor.SetGenerationTimeout(time.Second)
	f.service = NewDebateService(f.arguments, f.votes, f.evidence, f.rounds, conductor, zap.NewNop())
	return f
}

func TestStartDebate_RoundCountValidation(t *testing.T) {
	f := newDebateFixture(&fixedClaimExtractor{})
	ctx := context.Background()

	for _, n := range []int{0, -1, 11} {
		if _, err := f.service.StartDebate(ctx, uuid.New(), uuid.New(), "Adopt the proposal", n); err != ErrInvalidRoundCount {
			t.Fatalf("round_count %d: expected ErrInvalidRoundCount, got %v", n, err)
		}
	}
}

func TestStartDebate_TwoRounds(t *testing.T) {
	f := newDebateFixture(&fixedClaimExtractor{})
	sessionID, solutionID := uuid.New(), uuid.New()
	ctx := context.Background()

	session, err := f.service.StartDebate(ctx, sessionID, solutionID, "Adopt the proposal", 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(session.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(session.Rounds))
	}
	for i, round := range session.Rounds {
		if round.RoundNumber != i+1 {
			t.Fatalf("expected round %d, got %d", i+1, round.RoundNumber)
		}
		if len(round.Arguments) != 2 {
			t.Fatalf("round %d: expected 2 arguments, got %d", round.RoundNumber, len(round.Arguments))
		}
		if !round.Completed {
			t.Fatalf("round %d not completed", round.RoundNumber)
		}
		// No votes yet: every round's consensus sits at low.
		if round.ConsensusLevel != domain.ConsensusLow {
			t.Fatalf("round %d: expected low consensus, got %s", round.RoundNumber, round.ConsensusLevel)
		}
	}

	if session.Status != domain.DebateCompleted {
		t.Fatalf("expected completed debate, got %s", session.Status)
	}
	// Equal neutral scores on both sides: a draw.
	if session.WinningPosition != domain.WinnerDraw {
		t.Fatalf("expected draw, got %s", session.WinningPosition)
	}
	if session.TotalVotes != 0 {
		t.Fatalf("expected 0 votes, got %d", session.TotalVotes)
	}
	if session.OverallConsensus != domain.ConsensusLow {
		t.Fatalf("expected low overall consensus, got %s", session.OverallConsensus)
	}

	stored, _ := f.arguments.ListBySession(ctx, sessionID)
	if len(stored) != 4 {
		t.Fatalf("expected 4 persisted arguments, got %d", len(stored))
	}
}

func TestGetDebateSession_NotFound(t *testing.T) {
	f := newDebateFixture(&fixedClaimExtractor{})
	if _, err := f.service.GetDebateSession(context.Background(), uuid.New()); err != ErrDebateNotFound {
		t.Fatalf("expected ErrDebateNotFound, got %v", err)
	}
}

func TestGetDebateSession_MatchesLiveSession(t *testing.T) {
	f := newDebateFixture(&fixedClaimExtractor{})
	sessionID, solutionID := uuid.New(), uuid.New()
	ctx := context.Background()

	live, err := f.service.StartDebate(ctx, sessionID, solutionID, "Adopt the proposal", 2)
	if err != nil {
		t.Fatalf("start debate: %v", err)
	}

	rebuilt, err := f.service.GetDebateSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("get debate: %v", err)
	}

	if rebuilt.SolutionID != solutionID {
		t.Fatalf("expected solution id %s, got %s", solutionID, rebuilt.SolutionID)
	}
	if rebuilt.Status != live.Status || rebuilt.WinningPosition != live.WinningPosition {
		t.Fatalf("rebuilt outcome diverged: %s/%s vs %s/%s",
			rebuilt.Status, rebuilt.WinningPosition, live.Status, live.WinningPosition)
	}
	if rebuilt.OverallConsensus != live.OverallConsensus || rebuilt.TotalVotes != live.TotalVotes {
		t.Fatal("rebuilt consensus or vote totals diverged from the live session")
	}
	if len(rebuilt.Rounds) != len(live.Rounds) {
		t.Fatalf("expected %d rounds, got %d", len(live.Rounds), len(rebuilt.Rounds))
	}
	for i := range rebuilt.Rounds {
		if rebuilt.Rounds[i].Summary != live.Rounds[i].Summary {
			t.Fatalf("round %d summary diverged: %q vs %q",
				i+1, rebuilt.Rounds[i].Summary, live.Rounds[i].Summary)
		}
	}
}

func TestGetDebateSession_Deterministic(t *testing.T) {
	f := newDebateFixture(&fixedClaimExtractor{})
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := f.service.StartDebate(ctx, sessionID, uuid.New(), "Adopt the proposal", 2); err != nil {
		t.Fatalf("start debate: %v", err)
	}

	// Votes after the debate change the derived fields, but two reads with no
	// intervening writes must agree exactly.
	voting := NewVotingService(f.arguments, zap.NewNop())
	stored, _ := f.arguments.ListBySession(ctx, sessionID)
	for i := 0; i < 3; i++ {
		if _, err := voting.ApplyVote(ctx, stored[0].ID, "up", uuid.NewString()); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}

	first, err := f.service.GetDebateSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := f.service.GetDebateSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two reads with no intervening writes produced different sessions")
	}
	if first.TotalVotes != 3 {
		t.Fatalf("expected 3 total votes, got %d", first.TotalVotes)
	}
}

func TestGetDebateSession_RecomputesEvidenceBoost(t *testing.T) {
	f := newDebateFixture(&fixedClaimExtractor{})
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := f.service.StartDebate(ctx, sessionID, uuid.New(), "Adopt the proposal", 1); err != nil {
		t.Fatalf("start debate: %v", err)
	}

	// Attach evidence out-of-band, then rebuild: the boost must come from the
	// evidence rows, not from whatever the live path last wrote.
	stored, _ := f.arguments.ListBySession(ctx, sessionID)
	ev := &domain.Evidence{
		SessionID:      sessionID,
		Claim:          "Deployment frequency doubled after adoption.",
		Confidence:     80,
		RelevanceScore: 60,
	}
	if err := f.evidence.Create(ctx, ev); err != nil {
		t.Fatalf("create evidence: %v", err)
	}
	evidenceSvc := NewEvidenceService(f.evidence, f.arguments, zap.NewNop())
	if _, err := evidenceSvc.Attach(ctx, stored[0].ID, ev.ID); err != nil {
		t.Fatalf("attach: %v", err)
	}

	rebuilt, err := f.service.GetDebateSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("get debate: %v", err)
	}
	arg := rebuilt.Rounds[0].ArgumentByRole(stored[0].Role)
	if arg.EvidenceBoost != 2.2 {
		t.Fatalf("expected recomputed boost 2.2, got %v", arg.EvidenceBoost)
	}
	if arg.StrengthScore != 7.2 {
		t.Fatalf("expected recomputed score 7.2, got %v", arg.StrengthScore)
	}
}

func TestGetDebateSession_IncompleteRoundHasNoWinner(t *testing.T) {
	f := newDebateFixture(&fixedClaimExtractor{})
	sessionID := uuid.New()
	ctx := context.Background()

	// Only a proponent argument: the round never completed.
	a := &domain.Argument{
		SessionID:     sessionID,
		SolutionID:    uuid.New(),
		Role:          domain.RoleProponent,
		RoundNumber:   1,
		Content:       "The change pays for itself within a quarter.",
		StrengthScore: domain.NeutralStrength,
	}
	if err := f.arguments.Create(ctx, a); err != nil {
		t.Fatalf("seed argument: %v", err)
	}

	session, err := f.service.GetDebateSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("get debate: %v", err)
	}
	if session.Rounds[0].Completed {
		t.Fatal("expected round incomplete with a single role present")
	}
	if session.Status != domain.DebateActive {
		t.Fatalf("expected active status, got %s", session.Status)
	}
	if session.WinningPosition != "" {
		t.Fatalf("expected no winner, got %s", session.WinningPosition)
	}
}
