package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/openagora/agora/internal/domain"
	"github.com/openagora/agora/internal/store"
	"go.uber.org/zap"
)

var (
	ErrInvalidVoteType  = errors.New("vote_type must be up or down")
	ErrUserIDMissing    = errors.New("user_id is required")
	ErrArgumentNotFound = errors.New("argument not found")
	ErrDuplicateVote    = errors.New("user already voted on this argument")
)

// VoteResult reports the recomputed score and how far the argument now sits
// from neutral.
type VoteResult struct {
	NewScore       float64 `json:"new_score"`
	ConsensusShift float64 `json:"consensus_shift"`
}

type VotingService struct {
	arguments domain.ArgumentStore
	logger    *zap.Logger
}

func NewVotingService(as domain.ArgumentStore, logger *zap.Logger) *VotingService {
	return &VotingService{arguments: as, logger: logger}
}

// ApplyVote records one user's vote on an argument. The store performs the
// duplicate check, vote insert, counter increment and score recompute as a
// single indivisible operation; on any failure no partial mutation is
// visible.
func (s *VotingService) ApplyVote(ctx context.Context, argumentID uuid.UUID, voteType string, userID string) (*VoteResult, error) {
	if userID == "" {
		return nil, ErrUserIDMissing
	}
	if !domain.ValidVoteType(voteType) {
		return nil, ErrInvalidVoteType
	}

	app, err := s.arguments.ApplyVote(ctx, argumentID, userID, domain.VoteType(voteType))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateVote):
			return nil, ErrDuplicateVote
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrArgumentNotFound
		}
		return nil, err
	}

	s.logger.Info("vote applied",
		zap.String("argument_id", argumentID.String()),
		zap.String("vote_type", voteType),
		zap.Float64("new_score", app.StrengthScore))

	return &VoteResult{
		NewScore:       app.StrengthScore,
		ConsensusShift: domain.ConsensusShift(app.StrengthScore),
	}, nil
}
