package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openagora/agora/internal/domain"
)

type RoundStore struct {
	db *pgxpool.Pool
}

func NewRoundStore(db *pgxpool.Pool) *RoundStore {
	return &RoundStore{db: db}
}

func (s *RoundStore) Upsert(ctx context.Context, r *domain.RoundRecord) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO rounds (session_id, solution_id, round_number, summary, completed)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id, round_number) DO UPDATE
		 SET summary = EXCLUDED.summary, completed = EXCLUDED.completed`,
		r.SessionID, r.SolutionID, r.RoundNumber, r.Summary, r.Completed,
	)
	return err
}

func (s *RoundStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.RoundRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT session_id, solution_id, round_number, summary, completed
		 FROM rounds WHERE session_id = $1
		 ORDER BY round_number`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RoundRecord
	for rows.Next() {
		var r domain.RoundRecord
		if err := rows.Scan(&r.SessionID, &r.SolutionID, &r.RoundNumber, &r.Summary, &r.Completed); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
