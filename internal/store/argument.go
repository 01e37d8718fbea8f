package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openagora/agora/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type ArgumentStore struct {
	db *pgxpool.Pool
}

func NewArgumentStore(db *pgxpool.Pool) *ArgumentStore {
	return &ArgumentStore{db: db}
}

func (s *ArgumentStore) Create(ctx context.Context, a *domain.Argument) error {
	if a.EvidenceIDs == nil {
		a.EvidenceIDs = []uuid.UUID{}
	}
	return s.db.QueryRow(ctx,
		`INSERT INTO arguments (session_id, solution_id, role, round_number, content, rebuttal_to, evidence_ids, evidence_boost, strength_score, upvotes, downvotes, degraded)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at`,
		a.SessionID, a.SolutionID, a.Role, a.RoundNumber, a.Content, a.RebuttalTo,
		a.EvidenceIDs, a.EvidenceBoost, a.StrengthScore, a.Upvotes, a.Downvotes, a.Degraded,
	).Scan(&a.ID, &a.CreatedAt)
}

func (s *ArgumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Argument, error) {
	a := &domain.Argument{}
	err := s.db.QueryRow(ctx,
		`SELECT id, session_id, solution_id, role, round_number, content, rebuttal_to, evidence_ids, evidence_boost, strength_score, upvotes, downvotes, degraded, created_at
		 FROM arguments WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.SessionID, &a.SolutionID, &a.Role, &a.RoundNumber, &a.Content,
		&a.RebuttalTo, &a.EvidenceIDs, &a.EvidenceBoost, &a.StrengthScore,
		&a.Upvotes, &a.Downvotes, &a.Degraded, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *ArgumentStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Argument, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, solution_id, role, round_number, content, rebuttal_to, evidence_ids, evidence_boost, strength_score, upvotes, downvotes, degraded, created_at
		 FROM arguments WHERE session_id = $1
		 ORDER BY round_number, created_at`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var arguments []domain.Argument
	for rows.Next() {
		var a domain.Argument
		if err := rows.Scan(&a.ID, &a.SessionID, &a.SolutionID, &a.Role, &a.RoundNumber,
			&a.Content, &a.RebuttalTo, &a.EvidenceIDs, &a.EvidenceBoost, &a.StrengthScore,
			&a.Upvotes, &a.Downvotes, &a.Degraded, &a.CreatedAt); err != nil {
			return nil, err
		}
		arguments = append(arguments, a)
	}
	return arguments, rows.Err()
}

// ApplyVote runs the duplicate check, vote insert, counter increment and
// strength recompute in a single transaction. The unique (user_id,
// argument_id) constraint is the duplicate check: a violation rolls the
// transaction back with ErrDuplicateVote and no counters change.
func (s *ArgumentStore) ApplyVote(ctx context.Context, argumentID uuid.UUID, userID string, voteType domain.VoteType) (*domain.VoteApplication, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO votes (argument_id, user_id, vote_type) VALUES ($1, $2, $3)`,
		argumentID, userID, voteType,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return nil, ErrDuplicateVote
			case pgForeignKeyViolation:
				return nil, ErrNotFound
			}
		}
		return nil, err
	}

	counter := "upvotes"
	if voteType == domain.VoteDown {
		counter = "downvotes"
	}

	app := &domain.VoteApplication{}
	err = tx.QueryRow(ctx,
		`UPDATE arguments SET `+counter+` = `+counter+` + 1
		 WHERE id = $1
		 RETURNING upvotes, downvotes, evidence_boost`,
		argumentID,
	).Scan(&app.Upvotes, &app.Downvotes, &app.EvidenceBoost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	app.StrengthScore = domain.CombineStrength(
		domain.StrengthFromVotes(app.Upvotes, app.Downvotes), app.EvidenceBoost)

	if _, err := tx.Exec(ctx,
		`UPDATE arguments SET strength_score = $2 WHERE id = $1`,
		argumentID, app.StrengthScore,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// LinkEvidence appends the evidence id and applies the boost exactly once.
// The WHERE clause guards idempotency: a repeat link updates no row and is
// reported as alreadyLinked rather than an error.
func (s *ArgumentStore) LinkEvidence(ctx context.Context, argumentID, evidenceID uuid.UUID, boost float64) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var upvotes, downvotes int
	var evidenceBoost float64
	err = tx.QueryRow(ctx,
		`UPDATE arguments
		 SET evidence_ids = array_append(evidence_ids, $2),
		     evidence_boost = evidence_boost + $3
		 WHERE id = $1 AND NOT ($2 = ANY(evidence_ids))
		 RETURNING upvotes, downvotes, evidence_boost`,
		argumentID, evidenceID, boost,
	).Scan(&upvotes, &downvotes, &evidenceBoost)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return false, err
		}
		// Nothing updated: either the argument is missing or the evidence
		// is already linked.
		var linked bool
		checkErr := tx.QueryRow(ctx,
			`SELECT $2 = ANY(evidence_ids) FROM arguments WHERE id = $1`,
			argumentID, evidenceID,
		).Scan(&linked)
		if checkErr != nil {
			if errors.Is(checkErr, pgx.ErrNoRows) {
				return false, ErrNotFound
			}
			return false, checkErr
		}
		if !linked {
			return false, ErrConflict
		}
		return true, tx.Commit(ctx)
	}

	score := domain.CombineStrength(domain.StrengthFromVotes(upvotes, downvotes), evidenceBoost)
	if _, err := tx.Exec(ctx,
		`UPDATE arguments SET strength_score = $2 WHERE id = $1`,
		argumentID, score,
	); err != nil {
		return false, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE evidence SET argument_id = $2 WHERE id = $1`,
		evidenceID, argumentID,
	); err != nil {
		return false, err
	}

	return false, tx.Commit(ctx)
}

func (s *ArgumentStore) DeleteByRound(ctx context.Context, sessionID, solutionID uuid.UUID, roundNumber int) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM arguments WHERE session_id = $1 AND solution_id = $2 AND round_number = $3`,
		sessionID, solutionID, roundNumber,
	)
	return err
}
