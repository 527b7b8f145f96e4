package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

var (
	ErrPlayerReferenceInvalid = errors.New("referenced player does not exist")
	ErrMatchInvalid           = errors.New("match violates a table constraint")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.MatchResult) error
	ListAll(ctx context.Context, exec SQLExecutor) ([]models.MatchResult, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.MatchResult) error {
	query := `
		INSERT INTO matches (winner_id, loser_id, is_draw)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := executorOr(exec, r.db).QueryRowContext(ctx, query, match.WinnerID, match.LoserID, match.IsDraw).
		Scan(&match.ID, &match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if code, constraint, ok := constraintViolation(err); ok {
		switch code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%w (%s)", ErrPlayerReferenceInvalid, constraint)
		case pqCheckViolation:
			return fmt.Errorf("%w (%s)", ErrMatchInvalid, constraint)
		}
	}
	return fmt.Errorf("failed to insert match: %w", err)
}

func (r *postgresMatchRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]models.MatchResult, error) {
	query := `SELECT id, winner_id, loser_id, is_draw, created_at FROM matches ORDER BY id ASC`
	rows, err := executorOr(exec, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.MatchResult, 0)
	for rows.Next() {
		var m models.MatchResult
		if err := rows.Scan(&m.ID, &m.WinnerID, &m.LoserID, &m.IsDraw, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := executorOr(exec, r.db).ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}
