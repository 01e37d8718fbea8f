package service

import "strings"

const (
	defaultMinClaimLength     = 40
	defaultMaxClaimCandidates = 3
)

// hedgePhrases mark sentences that assert checkable facts. The heuristic is
// deliberately crude; it exists behind domain.ClaimExtractor so callers can
// swap in something better without touching the round pipeline.
var hedgePhrases = []string{
	"studies show",
	"research indicates",
	"according to",
	"evidence suggests",
	"data shows",
	"statistics show",
	"has been shown",
	"demonstrated",
	"proven",
}

// HedgeClaimExtractor extracts candidate factual claims: sentences at least
// MinLength characters long that contain an evidentiary hedge phrase, capped
// at MaxCandidates.
type HedgeClaimExtractor struct {
	MinLength     int
	MaxCandidates int
}

func NewHedgeClaimExtractor() *HedgeClaimExtractor {
	return &HedgeClaimExtractor{
		MinLength:     defaultMinClaimLength,
		MaxCandidates: defaultMaxClaimCandidates,
	}
}

func (e *HedgeClaimExtractor) Extract(text string) []string {
	var claims []string
	for _, sentence := range splitSentences(text) {
		if len(sentence) < e.MinLength {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, phrase := range hedgePhrases {
			if strings.Contains(lower, phrase) {
				claims = append(claims, sentence)
				break
			}
		}
		if len(claims) >= e.MaxCandidates {
			break
		}
	}
	return claims
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		switch r {
		case '.', '!', '?':
			if s := strings.TrimSpace(text[start:i]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
