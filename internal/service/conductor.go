package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openagora/agora/internal/domain"
	"go.uber.org/zap"
)

const (
	// maxEvidencePerRound bounds the gathering cost: of up to three
	// extracted claim candidates, at most two are sent out.
	maxEvidencePerRound = 2

	// claimPrefixLen is the length of the claim's opening substring used
	// to match evidence back to an argument.
	claimPrefixLen = 40

	// minClaimMatchLen is the shortest prefix that still counts as a match.
	minClaimMatchLen = 12

	defaultGenerationTimeout = 30 * time.Second
	defaultMaxRetries        = 2
	initialRetryBackoff      = 500 * time.Millisecond
)

// RoundConductor drives one debate round: both agent turns, claim
// extraction, evidence gathering and attachment, and the round summary.
type RoundConductor struct {
	arguments domain.ArgumentStore
	evidence  domain.EvidenceStore
	rounds    domain.RoundStore
	generator domain.Generator
	extractor domain.ClaimExtractor
	logger    *zap.Logger

	genTimeout time.Duration
	maxRetries int
}

func NewRoundConductor(as domain.ArgumentStore, es domain.EvidenceStore, rs domain.RoundStore, gen domain.Generator, ex domain.ClaimExtractor, logger *zap.Logger) *RoundConductor {
	if ex == nil {
		ex = NewHedgeClaimExtractor()
	}
	return &RoundConductor{
		arguments:  as,
		evidence:   es,
		rounds:     rs,
		generator:  gen,
		extractor:  ex,
		logger:     logger,
		genTimeout: defaultGenerationTimeout,
		maxRetries: defaultMaxRetries,
	}
}

func (c *RoundConductor) SetGenerationTimeout(d time.Duration) {
	c.genTimeout = d
}

func (c *RoundConductor) SetMaxRetries(n int) {
	c.maxRetries = n
}

// ConductRound runs one round. Generation failures degrade to templated
// placeholder content and the round still completes; store failures and
// caller cancellation abort it. Any arguments left behind by a previously
// aborted attempt at this round are discarded first, so a retried round is
// never merged with partial output.
func (c *RoundConductor) ConductRound(ctx context.Context, sessionID, solutionID uuid.UUID, roundNumber int, solution string, priorRounds []domain.Round) (*domain.Round, error) {
	if err := c.arguments.DeleteByRound(ctx, sessionID, solutionID, roundNumber); err != nil {
		return nil, err
	}

	// Proponent turn: round 1 opens the advocacy; later rounds rebut the
	// most recent opponent argument, scanning prior rounds backward.
	var proponentTarget *domain.Argument
	if roundNumber > 1 {
		proponentTarget = latestArgument(priorRounds, domain.RoleOpponent)
	}

	proponent, err := c.produceArgument(ctx, sessionID, solutionID, domain.RoleProponent, roundNumber, solution, proponentTarget)
	if err != nil {
		return nil, err
	}

	// Opponent turn always answers this round's proponent argument.
	opponent, err := c.produceArgument(ctx, sessionID, solutionID, domain.RoleOpponent, roundNumber, solution, proponent)
	if err != nil {
		return nil, err
	}

	round := &domain.Round{
		RoundNumber: roundNumber,
		Arguments:   []domain.Argument{*proponent, *opponent},
		Completed:   true,
	}

	c.gatherEvidence(ctx, sessionID, round)

	round.ConsensusLevel = domain.RoundConsensusLevel(round.TotalVotes(), round.MeanStrength())
	round.Summary = c.summarize(ctx, round)

	if err := c.rounds.Upsert(ctx, &domain.RoundRecord{
		SessionID:   sessionID,
		SolutionID:  solutionID,
		RoundNumber: roundNumber,
		Summary:     round.Summary,
		Completed:   true,
	}); err != nil {
		return nil, err
	}

	return round, nil
}

func (c *RoundConductor) produceArgument(ctx context.Context, sessionID, solutionID uuid.UUID, role domain.Role, roundNumber int, solution string, target *domain.Argument) (*domain.Argument, error) {
	opposing := ""
	var rebuttalTo *uuid.UUID
	if target != nil {
		opposing = target.Content
		id := target.ID
		rebuttalTo = &id
	}

	content, degraded, err := c.generateWithRetry(ctx, role, solution, opposing, roundNumber)
	if err != nil {
		return nil, err
	}

	arg := &domain.Argument{
		SessionID:     sessionID,
		SolutionID:    solutionID,
		Role:          role,
		RoundNumber:   roundNumber,
		Content:       content,
		RebuttalTo:    rebuttalTo,
		StrengthScore: domain.NeutralStrength,
		Degraded:      degraded,
	}
	if err := c.arguments.Create(ctx, arg); err != nil {
		return nil, err
	}
	return arg, nil
}

// generateWithRetry awaits the generator with a bounded per-call deadline,
// retrying with doubling backoff. Exhausted retries degrade to a templated
// placeholder; the triggering failure is logged so the round can be re-run.
// Caller cancellation is the one error that propagates.
func (c *RoundConductor) generateWithRetry(ctx context.Context, role domain.Role, solution, opposing string, roundNumber int) (string, bool, error) {
	backoff := initialRetryBackoff
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}

		callCtx, cancel := context.WithTimeout(ctx, c.genTimeout)
		content, err := c.generator.GenerateArgument(callCtx, role, solution, opposing, roundNumber)
		cancel()

		if err == nil && content != "" {
			return content, false, nil
		}
		lastErr = err

		if attempt < c.maxRetries {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", false, ctx.Err()
			}
			backoff *= 2
		}
	}

	if ctx.Err() != nil {
		return "", false, ctx.Err()
	}

	c.logger.Warn("argument generation failed, using fallback",
		zap.String("role", string(role)),
		zap.Int("round", roundNumber),
		zap.Error(lastErr))

	return fallbackArgument(role, roundNumber), true, nil
}

func fallbackArgument(role domain.Role, roundNumber int) string {
	position := "in favor of"
	if role == domain.RoleOpponent {
		position = "against"
	}
	return fmt.Sprintf("The %s position %s the solution for round %d could not be generated and is recorded as a placeholder pending regeneration.", role, position, roundNumber)
}

// gatherEvidence extracts candidate claims from the round's argument text,
// requests evidence for at most two of them, and attaches each item to the
// argument whose content matches the claim's opening substring. Failures
// here are non-fatal: the round completes without the evidence.
func (c *RoundConductor) gatherEvidence(ctx context.Context, sessionID uuid.UUID, round *domain.Round) {
	text := ""
	for i := range round.Arguments {
		text += round.Arguments[i].Content + " "
	}

	claims := c.extractor.Extract(text)
	gathered := 0
	for _, claim := range claims {
		if gathered >= maxEvidencePerRound {
			break
		}
		gathered++

		callCtx, cancel := context.WithTimeout(ctx, c.genTimeout)
		ev, err := c.generator.GatherEvidence(callCtx, claim)
		cancel()
		if err != nil {
			c.logger.Warn("evidence gathering failed",
				zap.Int("round", round.RoundNumber),
				zap.Error(err))
			continue
		}

		ev.SessionID = sessionID
		if err := c.evidence.Create(ctx, ev); err != nil {
			c.logger.Warn("evidence persist failed", zap.Error(err))
			continue
		}

		target := matchArgument(round, claim)
		if target == nil {
			// No argument matches the claim's opening substring.
			continue
		}

		boost := domain.EvidenceBoostFor(ev.Confidence, ev.RelevanceScore)
		if _, err := c.arguments.LinkEvidence(ctx, target.ID, ev.ID, boost); err != nil {
			c.logger.Warn("evidence link failed", zap.Error(err))
			continue
		}

		// Refresh the in-memory copy from the store rather than patching it,
		// so the live view never diverges from persisted counters.
		if updated, err := c.arguments.GetByID(ctx, target.ID); err == nil {
			*target = *updated
		}
	}
}

// matchArgument picks the round argument whose content contains the longest
// prefix of the claim, requiring at least minClaimMatchLen characters.
func matchArgument(round *domain.Round, claim string) *domain.Argument {
	var best *domain.Argument
	bestLen := 0
	for i := range round.Arguments {
		l := prefixMatchLen(round.Arguments[i].Content, claim)
		if l >= minClaimMatchLen && l > bestLen {
			best = &round.Arguments[i]
			bestLen = l
		}
	}
	return best
}

func prefixMatchLen(content, claim string) int {
	max := claimPrefixLen
	if len(claim) < max {
		max = len(claim)
	}
	for l := max; l >= minClaimMatchLen; l-- {
		if containsFold(content, claim[:l]) {
			return l
		}
	}
	return 0
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (c *RoundConductor) summarize(ctx context.Context, round *domain.Round) string {
	callCtx, cancel := context.WithTimeout(ctx, c.genTimeout)
	defer cancel()

	summary, err := c.generator.SummarizeRound(callCtx, round)
	if err == nil && summary != "" {
		return summary
	}

	c.logger.Warn("round summary generation failed, using template",
		zap.Int("round", round.RoundNumber),
		zap.Error(err))

	return fmt.Sprintf("Round %d concluded with %d arguments exchanged. Current consensus level: %s.",
		round.RoundNumber, len(round.Arguments), round.ConsensusLevel)
}

func latestArgument(rounds []domain.Round, role domain.Role) *domain.Argument {
	for i := len(rounds) - 1; i >= 0; i-- {
		if a := rounds[i].ArgumentByRole(role); a != nil {
			return a
		}
	}
	return nil
}
