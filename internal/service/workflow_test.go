package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/openagora/agora/internal/domain"
	"go.uber.org/zap"
)

func newWorkflowService() (*WorkflowService, *mockSessionStore) {
	sessions := newMockSessionStore()
	return NewWorkflowService(sessions, zap.NewNop()), sessions
}

func TestWorkflowService_CreateSession(t *testing.T) {
	svc, _ := newWorkflowService()

	sess, err := svc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sess.CurrentPhase != domain.PhaseSetup {
		t.Fatalf("expected new session in setup, got %s", sess.CurrentPhase)
	}
	if sess.Status != domain.SessionDraft {
		t.Fatalf("expected draft status, got %s", sess.Status)
	}
	if len(sess.CompletedPhases) != 0 {
		t.Fatalf("expected no completed phases, got %v", sess.CompletedPhases)
	}
}

func TestWorkflowService_AdvanceThroughAllPhases(t *testing.T) {
	svc, _ := newWorkflowService()
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	for phase := 1; phase <= 6; phase++ {
		sess, err = svc.AdvancePhase(ctx, sess.ID, phase)
		if err != nil {
			t.Fatalf("advance from phase %d: %v", phase, err)
		}
		if !sess.HasCompletedPhase(phase) {
			t.Fatalf("phase %d not recorded as completed", phase)
		}
		if phase < 6 && sess.CurrentPhase != domain.Phase(phase+1) {
			t.Fatalf("expected current phase %d, got %s", phase+1, sess.CurrentPhase)
		}
	}

	if sess.Status != domain.SessionCompleted {
		t.Fatalf("expected completed session after phase 6, got %s", sess.Status)
	}

	// A completed session accepts no further transitions.
	if _, err := svc.AdvancePhase(ctx, sess.ID, 6); err != ErrSessionCompleted {
		t.Fatalf("expected ErrSessionCompleted, got %v", err)
	}
}

func TestWorkflowService_DraftBecomesInProgress(t *testing.T) {
	svc, _ := newWorkflowService()
	ctx := context.Background()

	sess, _ := svc.CreateSession(ctx)
	sess, err := svc.AdvancePhase(ctx, sess.ID, 1)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if sess.Status != domain.SessionInProgress {
		t.Fatalf("expected in_progress after first advance, got %s", sess.Status)
	}
}

func TestWorkflowService_RejectsSkipsAndRepeats(t *testing.T) {
	svc, _ := newWorkflowService()
	ctx := context.Background()

	sess, _ := svc.CreateSession(ctx)

	// Skipping ahead of the current phase.
	if _, err := svc.AdvancePhase(ctx, sess.ID, 3); err != ErrPhaseMismatch {
		t.Fatalf("expected ErrPhaseMismatch on skip, got %v", err)
	}

	if _, err := svc.AdvancePhase(ctx, sess.ID, 1); err != nil {
		t.Fatalf("advance: %v", err)
	}

	// Repeating an already-completed phase.
	if _, err := svc.AdvancePhase(ctx, sess.ID, 1); err != ErrPhaseMismatch {
		t.Fatalf("expected ErrPhaseMismatch on repeat, got %v", err)
	}
}

func TestWorkflowService_RejectsInvalidPhaseNumbers(t *testing.T) {
	svc, _ := newWorkflowService()
	ctx := context.Background()

	sess, _ := svc.CreateSession(ctx)
	for _, phase := range []int{0, -1, 7} {
		if _, err := svc.AdvancePhase(ctx, sess.ID, phase); err != ErrInvalidPhase {
			t.Fatalf("phase %d: expected ErrInvalidPhase, got %v", phase, err)
		}
	}
}

func TestWorkflowService_SessionNotFound(t *testing.T) {
	svc, _ := newWorkflowService()
	ctx := context.Background()

	if _, err := svc.GetSession(ctx, uuid.New()); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.AdvancePhase(ctx, uuid.New(), 1); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
