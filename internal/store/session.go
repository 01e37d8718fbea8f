package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openagora/agora/internal/domain"
)

type SessionStore struct {
	db *pgxpool.Pool
}

func NewSessionStore(db *pgxpool.Pool) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, sess *domain.Session) error {
	if sess.CurrentPhase == 0 {
		sess.CurrentPhase = domain.PhaseSetup
	}
	if sess.Status == "" {
		sess.Status = domain.SessionDraft
	}
	if sess.CompletedPhases == nil {
		sess.CompletedPhases = []int{}
	}
	return s.db.QueryRow(ctx,
		`INSERT INTO sessions (current_phase, completed_phases, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		sess.CurrentPhase, sess.CompletedPhases, sess.Status,
	).Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt)
}

func (s *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	sess := &domain.Session{}
	err := s.db.QueryRow(ctx,
		`SELECT id, current_phase, completed_phases, status, created_at, updated_at
		 FROM sessions WHERE id = $1`,
		id,
	).Scan(&sess.ID, &sess.CurrentPhase, &sess.CompletedPhases, &sess.Status, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *SessionStore) Update(ctx context.Context, sess *domain.Session) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE sessions
		 SET current_phase = $2, completed_phases = $3, status = $4, updated_at = NOW()
		 WHERE id = $1`,
		sess.ID, sess.CurrentPhase, sess.CompletedPhases, sess.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
