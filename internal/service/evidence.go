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
	ErrClaimMissing      = errors.New("claim is required")
	ErrSessionIDMissing  = errors.New("session_id is required")
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 100")
	ErrInvalidRelevance  = errors.New("relevance_score must be between 0 and 100")
	ErrEvidenceNotFound  = errors.New("evidence not found")
)

// AttachResult reports the boost applied by linking evidence to an argument.
// A repeated link is idempotent: AlreadyLinked is set and no boost is
// re-applied.
type AttachResult struct {
	StrengthBoost float64 `json:"strength_boost"`
	AlreadyLinked bool    `json:"already_linked,omitempty"`
}

type EvidenceService struct {
	evidence  domain.EvidenceStore
	arguments domain.ArgumentStore
	logger    *zap.Logger
}

func NewEvidenceService(es domain.EvidenceStore, as domain.ArgumentStore, logger *zap.Logger) *EvidenceService {
	return &EvidenceService{evidence: es, arguments: as, logger: logger}
}

func (s *EvidenceService) Create(ctx context.Context, e *domain.Evidence) error {
	if e.SessionID == uuid.Nil {
		return ErrSessionIDMissing
	}
	if e.Claim == "" {
		return ErrClaimMissing
	}
	if e.Confidence < 0 || e.Confidence > 100 {
		return ErrInvalidConfidence
	}
	if e.RelevanceScore < 0 || e.RelevanceScore > 100 {
		return ErrInvalidRelevance
	}
	return s.evidence.Create(ctx, e)
}

func (s *EvidenceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Evidence, error) {
	e, err := s.evidence.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEvidenceNotFound
		}
		return nil, err
	}
	return e, nil
}

// Attach links evidence into an argument's evidence set and applies the
// bounded strength boost exactly once per distinct evidence id.
func (s *EvidenceService) Attach(ctx context.Context, argumentID, evidenceID uuid.UUID) (*AttachResult, error) {
	ev, err := s.evidence.GetByID(ctx, evidenceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEvidenceNotFound
		}
		return nil, err
	}

	boost := domain.EvidenceBoostFor(ev.Confidence, ev.RelevanceScore)

	alreadyLinked, err := s.arguments.LinkEvidence(ctx, argumentID, evidenceID, boost)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrArgumentNotFound
		}
		return nil, err
	}
	if alreadyLinked {
		return &AttachResult{StrengthBoost: 0, AlreadyLinked: true}, nil
	}

	s.logger.Info("evidence attached",
		zap.String("argument_id", argumentID.String()),
		zap.String("evidence_id", evidenceID.String()),
		zap.Float64("boost", boost))

	return &AttachResult{StrengthBoost: boost}, nil
}
