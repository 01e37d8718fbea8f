package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openagora/agora/internal/domain"
	"github.com/openagora/agora/internal/store"
)

// mockArgumentStore implements domain.ArgumentStore for testing.
type mockArgumentStore struct {
	arguments map[uuid.UUID]*domain.Argument
	order     []uuid.UUID
	votes     map[string]bool // userID|argumentID
}

func newMockArgumentStore() *mockArgumentStore {
	return &mockArgumentStore{
		arguments: make(map[uuid.UUID]*domain.Argument),
		votes:     make(map[string]bool),
	}
}

func (m *mockArgumentStore) Create(ctx context.Context, a *domain.Argument) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	if a.EvidenceIDs == nil {
		a.EvidenceIDs = []uuid.UUID{}
	}
	stored := *a
	m.arguments[a.ID] = &stored
	m.order = append(m.order, a.ID)
	return nil
}

func (m *mockArgumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Argument, error) {
	a, ok := m.arguments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockArgumentStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Argument, error) {
	var out []domain.Argument
	for _, id := range m.order {
		a := m.arguments[id]
		if a.SessionID == sessionID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockArgumentStore) ApplyVote(ctx context.Context, argumentID uuid.UUID, userID string, voteType domain.VoteType) (*domain.VoteApplication, error) {
	key := userID + "|" + argumentID.String()
	if m.votes[key] {
		return nil, store.ErrDuplicateVote
	}
	a, ok := m.arguments[argumentID]
	if !ok {
		return nil, store.ErrNotFound
	}
	m.votes[key] = true
	if voteType == domain.VoteUp {
		a.Upvotes++
	} else {
		a.Downvotes++
	}
	a.StrengthScore = domain.CombineStrength(
		domain.StrengthFromVotes(a.Upvotes, a.Downvotes), a.EvidenceBoost)
	return &domain.VoteApplication{
		Upvotes:       a.Upvotes,
		Downvotes:     a.Downvotes,
		EvidenceBoost: a.EvidenceBoost,
		StrengthScore: a.StrengthScore,
	}, nil
}

func (m *mockArgumentStore) LinkEvidence(ctx context.Context, argumentID, evidenceID uuid.UUID, boost float64) (bool, error) {
	a, ok := m.arguments[argumentID]
	if !ok {
		return false, store.ErrNotFound
	}
	if a.HasEvidence(evidenceID) {
		return true, nil
	}
	a.EvidenceIDs = append(a.EvidenceIDs, evidenceID)
	a.EvidenceBoost += boost
	a.StrengthScore = domain.CombineStrength(
		domain.StrengthFromVotes(a.Upvotes, a.Downvotes), a.EvidenceBoost)
	return false, nil
}

func (m *mockArgumentStore) DeleteByRound(ctx context.Context, sessionID, solutionID uuid.UUID, roundNumber int) error {
	var kept []uuid.UUID
	for _, id := range m.order {
		a := m.arguments[id]
		if a.SessionID == sessionID && a.SolutionID == solutionID && a.RoundNumber == roundNumber {
			delete(m.arguments, id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
	return nil
}

// mockVoteStore implements domain.VoteStore for testing.
type mockVoteStore struct {
	votes map[uuid.UUID][]domain.Vote
}

func newMockVoteStore() *mockVoteStore {
	return &mockVoteStore{votes: make(map[uuid.UUID][]domain.Vote)}
}

func (m *mockVoteStore) ListByArgument(ctx context.Context, argumentID uuid.UUID) ([]domain.Vote, error) {
	return m.votes[argumentID], nil
}

func (m *mockVoteStore) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	count := 0
	for _, vs := range m.votes {
		count += len(vs)
	}
	return count, nil
}

// mockEvidenceStore implements domain.EvidenceStore for testing.
type mockEvidenceStore struct {
	evidence map[uuid.UUID]*domain.Evidence
	order    []uuid.UUID
}

func newMockEvidenceStore() *mockEvidenceStore {
	return &mockEvidenceStore{evidence: make(map[uuid.UUID]*domain.Evidence)}
}

func (m *mockEvidenceStore) Create(ctx context.Context, e *domain.Evidence) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	stored := *e
	m.evidence[e.ID] = &stored
	m.order = append(m.order, e.ID)
	return nil
}

func (m *mockEvidenceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Evidence, error) {
	e, ok := m.evidence[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockEvidenceStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Evidence, error) {
	var out []domain.Evidence
	for _, id := range m.order {
		e := m.evidence[id]
		if e.SessionID == sessionID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// mockRoundStore implements domain.RoundStore for testing.
type mockRoundStore struct {
	records map[string]*domain.RoundRecord
}

func newMockRoundStore() *mockRoundStore {
	return &mockRoundStore{records: make(map[string]*domain.RoundRecord)}
}

func roundKey(sessionID uuid.UUID, roundNumber int) string {
	return fmt.Sprintf("%s|%d", sessionID, roundNumber)
}

func (m *mockRoundStore) Upsert(ctx context.Context, r *domain.RoundRecord) error {
	stored := *r
	m.records[roundKey(r.SessionID, r.RoundNumber)] = &stored
	return nil
}

func (m *mockRoundStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.RoundRecord, error) {
	var out []domain.RoundRecord
	for _, r := range m.records {
		if r.SessionID == sessionID {
			out = append(out, *r)
		}
	}
	return out, nil
}

// mockSessionStore implements domain.SessionStore for testing.
type mockSessionStore struct {
	sessions map[uuid.UUID]*domain.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (m *mockSessionStore) Create(ctx context.Context, s *domain.Session) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	stored := *s
	m.sessions[s.ID] = &stored
	return nil
}

func (m *mockSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s
	cp.CompletedPhases = append([]int{}, s.CompletedPhases...)
	return &cp, nil
}

func (m *mockSessionStore) Update(ctx context.Context, s *domain.Session) error {
	if _, ok := m.sessions[s.ID]; !ok {
		return store.ErrNotFound
	}
	s.UpdatedAt = time.Now()
	stored := *s
	stored.CompletedPhases = append([]int{}, s.CompletedPhases...)
	m.sessions[s.ID] = &stored
	return nil
}

// fixedClaimExtractor returns a preset claim list regardless of input.
type fixedClaimExtractor struct {
	claims []string
}

func (f *fixedClaimExtractor) Extract(text string) []string {
	return f.claims
}
