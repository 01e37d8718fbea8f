package domain

import "testing"

func TestNextPhase(t *testing.T) {
	order := []Phase{PhaseSetup, PhaseProblem, PhaseSolutionGeneration, PhaseDebate, PhaseEvidence, PhaseSummary}
	for i := 0; i < len(order)-1; i++ {
		next, ok := NextPhase(order[i])
		if !ok {
			t.Fatalf("expected transition from %s", order[i])
		}
		if next != order[i+1] {
			t.Fatalf("expected %s -> %s, got %s", order[i], order[i+1], next)
		}
	}

	if _, ok := NextPhase(PhaseSummary); ok {
		t.Fatal("summary is terminal, expected no transition")
	}
	if _, ok := NextPhase(Phase(7)); ok {
		t.Fatal("expected no transition for unknown phase")
	}
}

func TestValidPhase(t *testing.T) {
	for p := 1; p <= 6; p++ {
		if !ValidPhase(p) {
			t.Fatalf("expected phase %d to be valid", p)
		}
	}
	for _, p := range []int{0, -1, 7, 100} {
		if ValidPhase(p) {
			t.Fatalf("expected phase %d to be invalid", p)
		}
	}
}

func TestSessionHasCompletedPhase(t *testing.T) {
	s := &Session{CompletedPhases: []int{1, 2}}
	if !s.HasCompletedPhase(1) || !s.HasCompletedPhase(2) {
		t.Fatal("expected phases 1 and 2 to be completed")
	}
	if s.HasCompletedPhase(3) {
		t.Fatal("expected phase 3 to be incomplete")
	}
}

func TestRoleOpposing(t *testing.T) {
	if RoleProponent.Opposing() != RoleOpponent {
		t.Fatal("expected opponent")
	}
	if RoleOpponent.Opposing() != RoleProponent {
		t.Fatal("expected proponent")
	}
}
