package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openagora/agora/internal/domain"
)

type VoteStore struct {
	db *pgxpool.Pool
}

func NewVoteStore(db *pgxpool.Pool) *VoteStore {
	return &VoteStore{db: db}
}

func (s *VoteStore) ListByArgument(ctx context.Context, argumentID uuid.UUID) ([]domain.Vote, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, argument_id, user_id, vote_type, created_at
		 FROM votes WHERE argument_id = $1
		 ORDER BY created_at`,
		argumentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []domain.Vote
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.ID, &v.ArgumentID, &v.UserID, &v.VoteType, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// CountBySession counts votes across every argument in a session.
func (s *VoteStore) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM votes v
		 JOIN arguments a ON a.id = v.argument_id
		 WHERE a.session_id = $1`,
		sessionID,
	).Scan(&count)
	return count, err
}
