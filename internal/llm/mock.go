package llm

import (
	"context"
	"fmt"

	"github.com/openagora/agora/internal/domain"
)

// MockClient is a configurable generator for testing.
// Set the response fields to control what each method returns.
type MockClient struct {
	GenerateArgumentResponse string
	GenerateArgumentError    error
	GatherEvidenceResponse   *domain.Evidence
	GatherEvidenceError      error
	SummarizeRoundResponse   string
	SummarizeRoundError      error

	// FailuresBeforeSuccess makes the first N GenerateArgument calls fail
	// before succeeding, to exercise the caller's retry path.
	FailuresBeforeSuccess int

	// Call tracking for assertions
	GenerateArgumentCalls []struct {
		Role     domain.Role
		Opposing string
		Round    int
	}
	GatherEvidenceCalls []string
	SummarizeRoundCalls []int
}

func NewMockClient() *MockClient {
	return &MockClient{
		GenerateArgumentResponse: "Mock argument",
		SummarizeRoundResponse:   "Mock round summary",
		GatherEvidenceResponse: &domain.Evidence{
			Claim:          "Mock evidence",
			Confidence:     80,
			RelevanceScore: 70,
		},
	}
}

func (c *MockClient) GenerateArgument(ctx context.Context, role domain.Role, solution, opposing string, roundNumber int) (string, error) {
	c.GenerateArgumentCalls = append(c.GenerateArgumentCalls, struct {
		Role     domain.Role
		Opposing string
		Round    int
	}{role, opposing, roundNumber})

	if c.FailuresBeforeSuccess > 0 {
		c.FailuresBeforeSuccess--
		return "", fmt.Errorf("mock generation failure")
	}
	if c.GenerateArgumentError != nil {
		return "", c.GenerateArgumentError
	}
	return fmt.Sprintf("%s (round %d, %s)", c.GenerateArgumentResponse, roundNumber, role), nil
}

func (c *MockClient) GatherEvidence(ctx context.Context, claim string) (*domain.Evidence, error) {
	c.GatherEvidenceCalls = append(c.GatherEvidenceCalls, claim)
	if c.GatherEvidenceError != nil {
		return nil, c.GatherEvidenceError
	}
	ev := *c.GatherEvidenceResponse
	if ev.Claim == "Mock evidence" {
		ev.Claim = claim
	}
	return &ev, nil
}

func (c *MockClient) SummarizeRound(ctx context.Context, round *domain.Round) (string, error) {
	c.SummarizeRoundCalls = append(c.SummarizeRoundCalls, round.RoundNumber)
	if c.SummarizeRoundError != nil {
		return "", c.SummarizeRoundError
	}
	return c.SummarizeRoundResponse, nil
}

// Reset clears all recorded calls and resets responses to defaults.
func (c *MockClient) Reset() {
	c.GenerateArgumentResponse = "Mock argument"
	c.GenerateArgumentError = nil
	c.GatherEvidenceResponse = &domain.Evidence{
		Claim:          "Mock evidence",
		Confidence:     80,
		RelevanceScore: 70,
	}
	c.GatherEvidenceError = nil
	c.SummarizeRoundResponse = "Mock round summary"
	c.SummarizeRoundError = nil
	c.FailuresBeforeSuccess = 0
	c.GenerateArgumentCalls = nil
	c.GatherEvidenceCalls = nil
	c.SummarizeRoundCalls = nil
}
