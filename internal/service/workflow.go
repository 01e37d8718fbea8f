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
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidPhase     = errors.New("phase must be between 1 and 6")
	ErrPhaseMismatch    = errors.New("completed phase does not match the session's current phase")
	ErrSessionCompleted = errors.New("session already completed")
)

// WorkflowService drives the six-phase session state machine. Transitions
// are strictly forward by one phase and fire only on an explicit
// phase-complete signal from the caller.
type WorkflowService struct {
	sessions domain.SessionStore
	logger   *zap.Logger
}

func NewWorkflowService(ss domain.SessionStore, logger *zap.Logger) *WorkflowService {
	return &WorkflowService{sessions: ss, logger: logger}
}

func (s *WorkflowService) CreateSession(ctx context.Context) (*domain.Session, error) {
	sess := &domain.Session{
		CurrentPhase:    domain.PhaseSetup,
		CompletedPhases: []int{},
		Status:          domain.SessionDraft,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *WorkflowService) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// AdvancePhase moves the session forward one phase. completedPhase must be
// the session's current phase; skips, repeats and out-of-range numbers are
// rejected. Completing phase 1 moves the session to in_progress; completing
// phase 6 marks it completed.
func (s *WorkflowService) AdvancePhase(ctx context.Context, id uuid.UUID, completedPhase int) (*domain.Session, error) {
	if !domain.ValidPhase(completedPhase) {
		return nil, ErrInvalidPhase
	}

	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status == domain.SessionCompleted {
		return nil, ErrSessionCompleted
	}
	if domain.Phase(completedPhase) != sess.CurrentPhase {
		return nil, ErrPhaseMismatch
	}

	if !sess.HasCompletedPhase(completedPhase) {
		sess.CompletedPhases = append(sess.CompletedPhases, completedPhase)
	}

	if next, ok := domain.NextPhase(sess.CurrentPhase); ok {
		sess.CurrentPhase = next
		if sess.Status == domain.SessionDraft {
			sess.Status = domain.SessionInProgress
		}
	} else {
		// Summary is terminal: completing it completes the session.
		sess.Status = domain.SessionCompleted
	}

	if err := s.sessions.Update(ctx, sess); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s.logger.Info("phase advanced",
		zap.String("session_id", id.String()),
		zap.Int("completed_phase", completedPhase),
		zap.String("current_phase", sess.CurrentPhase.String()),
		zap.String("status", string(sess.Status)))

	return sess, nil
}
