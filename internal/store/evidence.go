package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openagora/agora/internal/domain"
)

type EvidenceStore struct {
	db *pgxpool.Pool
}

func NewEvidenceStore(db *pgxpool.Pool) *EvidenceStore {
	return &EvidenceStore{db: db}
}

func (s *EvidenceStore) Create(ctx context.Context, e *domain.Evidence) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO evidence (session_id, argument_id, claim, confidence, relevance_score)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		e.SessionID, e.ArgumentID, e.Claim, e.Confidence, e.RelevanceScore,
	).Scan(&e.ID, &e.CreatedAt)
}

func (s *EvidenceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Evidence, error) {
	e := &domain.Evidence{}
	err := s.db.QueryRow(ctx,
		`SELECT id, session_id, argument_id, claim, confidence, relevance_score, created_at
		 FROM evidence WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.SessionID, &e.ArgumentID, &e.Claim, &e.Confidence, &e.RelevanceScore, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *EvidenceStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Evidence, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, argument_id, claim, confidence, relevance_score, created_at
		 FROM evidence WHERE session_id = $1
		 ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Evidence
	for rows.Next() {
		var e domain.Evidence
		if err := rows.Scan(&e.ID, &e.SessionID, &e.ArgumentID, &e.Claim, &e.Confidence, &e.RelevanceScore, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
