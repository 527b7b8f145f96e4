package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

const (
	byesPlayerConstraint = "byes_pkey"
	byesRoundConstraint  = "byes_round_key"
)

var (
	ErrByeNotFound       = errors.New("bye not found")
	ErrByeAlreadyAwarded = errors.New("player has already received a bye")
	ErrByeRoundConflict  = errors.New("a bye has already been recorded for this round")
)

type ByeRepository interface {
	Create(ctx context.Context, exec SQLExecutor, bye *models.ByeRecord) error
	GetByRound(ctx context.Context, exec SQLExecutor, round int) (*models.ByeRecord, error)
	ListAll(ctx context.Context, exec SQLExecutor) ([]*models.ByeRecord, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresByeRepository struct {
	db *sql.DB
}

func NewPostgresByeRepository(db *sql.DB) ByeRepository {
	return &postgresByeRepository{db: db}
}

func (r *postgresByeRepository) Create(ctx context.Context, exec SQLExecutor, bye *models.ByeRecord) error {
	query := `INSERT INTO byes (player_id, round) VALUES ($1, $2) RETURNING created_at`
	err := executorOr(exec, r.db).QueryRowContext(ctx, query, bye.PlayerID, bye.Round).Scan(&bye.CreatedAt)
	return r.handleByeError(err, bye)
}

func (r *postgresByeRepository) handleByeError(err error, bye *models.ByeRecord) error {
	if err == nil {
		return nil
	}
	if code, constraint, ok := constraintViolation(err); ok {
		switch {
		case code == pqUniqueViolation && constraint == byesPlayerConstraint:
			return fmt.Errorf("%w: player %d", ErrByeAlreadyAwarded, bye.PlayerID)
		case code == pqUniqueViolation && constraint == byesRoundConstraint:
			return fmt.Errorf("%w: round %d", ErrByeRoundConflict, bye.Round)
		case code == pqForeignKeyViolation:
			return fmt.Errorf("%w: player %d", ErrPlayerReferenceInvalid, bye.PlayerID)
		}
	}
	return fmt.Errorf("failed to insert bye for player %d round %d: %w", bye.PlayerID, bye.Round, err)
}

func (r *postgresByeRepository) GetByRound(ctx context.Context, exec SQLExecutor, round int) (*models.ByeRecord, error) {
	query := `SELECT player_id, round, created_at FROM byes WHERE round = $1`
	var b models.ByeRecord
	err := executorOr(exec, r.db).QueryRowContext(ctx, query, round).Scan(&b.PlayerID, &b.Round, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrByeNotFound
		}
		return nil, fmt.Errorf("failed to scan bye for round %d: %w", round, err)
	}
	return &b, nil
}

func (r *postgresByeRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]*models.ByeRecord, error) {
	rows, err := executorOr(exec, r.db).QueryContext(ctx, `SELECT player_id, round, created_at FROM byes ORDER BY round ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query byes: %w", err)
	}
	defer rows.Close()

	byes := make([]*models.ByeRecord, 0)
	for rows.Next() {
		b := &models.ByeRecord{}
		if err := rows.Scan(&b.PlayerID, &b.Round, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bye row: %w", err)
		}
		byes = append(byes, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bye rows: %w", err)
	}
	return byes, nil
}

func (r *postgresByeRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := executorOr(exec, r.db).ExecContext(ctx, `DELETE FROM byes`); err != nil {
		return fmt.Errorf("failed to delete byes: %w", err)
	}
	return nil
}
