package llm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openagora/agora/internal/domain"
)

func argumentPrompt(role domain.Role, solution, opposing string, roundNumber int) string {
	var sb strings.Builder

	switch {
	case roundNumber == 1 && role == domain.RoleProponent:
		sb.WriteString("You are the proponent in a structured debate. Write an opening argument advocating for the following solution. Be specific and cite the kind of evidence that would support your position.\n\n")
	case roundNumber == 1 && role == domain.RoleOpponent:
		sb.WriteString("You are the opponent in a structured debate. Write an opening argument challenging the following solution. Identify its weakest assumptions.\n\n")
	case role == domain.RoleProponent:
		sb.WriteString("You are the proponent in a structured debate. Write a rebuttal to the opposing argument below, defending the solution.\n\n")
	default:
		sb.WriteString("You are the opponent in a structured debate. Write a rebuttal to the proponent argument below, challenging the solution.\n\n")
	}

	sb.WriteString("Solution:\n")
	sb.WriteString(solution)
	if opposing != "" {
		sb.WriteString("\n\nOpposing argument:\n")
		sb.WriteString(opposing)
	}
	sb.WriteString(fmt.Sprintf("\n\nThis is round %d. Respond with the argument text only.", roundNumber))
	return sb.String()
}

func evidencePrompt(claim string) string {
	return fmt.Sprintf(`Find supporting evidence for the following claim. Reply in exactly this format:
CONFIDENCE: <0-100>
RELEVANCE: <0-100>
EVIDENCE: <one-paragraph summary of the supporting evidence>

Claim: %s`, claim)
}

func summaryPrompt(round *domain.Round) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Summarize round %d of a structured debate in two or three sentences, neutrally covering both positions.\n", round.RoundNumber))
	for i := range round.Arguments {
		a := &round.Arguments[i]
		sb.WriteString(fmt.Sprintf("\n%s: %s\n", a.Role, a.Content))
	}
	return sb.String()
}

// parseEvidenceReply extracts confidence, relevance and the evidence text
// from the structured model reply. Missing or malformed fields fall back to
// middling scores rather than failing the round.
func parseEvidenceReply(claim, reply string) *domain.Evidence {
	ev := &domain.Evidence{
		Claim:          claim,
		Confidence:     50,
		RelevanceScore: 50,
	}

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "CONFIDENCE:"):
			ev.Confidence = clampScore(strings.TrimSpace(strings.TrimPrefix(line, "CONFIDENCE:")))
		case strings.HasPrefix(line, "RELEVANCE:"):
			ev.RelevanceScore = clampScore(strings.TrimSpace(strings.TrimPrefix(line, "RELEVANCE:")))
		case strings.HasPrefix(line, "EVIDENCE:"):
			if text := strings.TrimSpace(strings.TrimPrefix(line, "EVIDENCE:")); text != "" {
				ev.Claim = text
			}
		}
	}
	return ev
}

func clampScore(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 50
	}
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
