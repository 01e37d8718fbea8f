package service

import "testing"

func TestHedgeClaimExtractor(t *testing.T) {
	ex := NewHedgeClaimExtractor()

	text := "Studies show that automated review reduces defect escape rates by a wide margin. " +
		"We like this plan. " +
		"According to recent industry surveys, adoption of the practice doubled last year. " +
		"Short claim proven. " +
		"Research indicates teams adopting the workflow report higher throughput overall. " +
		"Evidence suggests onboarding time drops substantially once the tooling is standardized."

	claims := ex.Extract(text)
	if len(claims) != 3 {
		t.Fatalf("expected 3 claims (capped), got %d: %v", len(claims), claims)
	}
	// "We like this plan" has no hedge; "Short claim proven" is under MinLength.
	if claims[0] != "Studies show that automated review reduces defect escape rates by a wide margin" {
		t.Fatalf("unexpected first claim: %q", claims[0])
	}
	if claims[1] != "According to recent industry surveys, adoption of the practice doubled last year" {
		t.Fatalf("unexpected second claim: %q", claims[1])
	}
}

func TestHedgeClaimExtractor_NoHedges(t *testing.T) {
	ex := NewHedgeClaimExtractor()
	claims := ex.Extract("This is an opinionated argument without any citations or factual framing at all.")
	if len(claims) != 0 {
		t.Fatalf("expected no claims, got %v", claims)
	}
}

func TestHedgeClaimExtractor_CaseInsensitive(t *testing.T) {
	ex := NewHedgeClaimExtractor()
	claims := ex.Extract("STUDIES SHOW THE APPROACH SCALES LINEARLY WITH THE NUMBER OF PARTICIPANTS INVOLVED.")
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %v", claims)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two! Three? Trailing without terminator")
	want := []string{"One", "Two", "Three", "Trailing without terminator"}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
