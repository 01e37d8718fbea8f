package domain

import (
	"time"

	"github.com/google/uuid"
)

// Evidence is a gathered item supporting a claim. Confidence and
// RelevanceScore are 0-100; together they determine the strength boost the
// item grants the argument it is linked to.
type Evidence struct {
	ID         uuid.UUID  `json:"id"`
	SessionID  uuid.UUID  `json:"session_id"`
	ArgumentID *uuid.UUID `json:"argument_id,omitempty"`

	Claim          string `json:"claim"`
	Confidence     int    `json:"confidence"`
	RelevanceScore int    `json:"relevance_score"`

	CreatedAt time.Time `json:"created_at"`
}
