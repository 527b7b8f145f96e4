package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

const archiveTimeout = 15 * time.Second

type ReportMatchInput struct {
	WinnerID int  `json:"winner_id"`
	LoserID  int  `json:"loser_id"`
	IsDraw   bool `json:"is_draw"`
}

// EventPublisher fans tournament events out to live subscribers.
type EventPublisher interface {
	Publish(roomID, eventType string, payload interface{})
}

type RankingConfig struct {
	Standings brackets.RankingKey
	Pairing   brackets.RankingKey
}

type TournamentService interface {
	RegisterPlayer(ctx context.Context, name string) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	DeletePlayers(ctx context.Context) error

	ReportMatch(ctx context.Context, input ReportMatchInput) (*models.MatchResult, error)
	DeleteMatches(ctx context.Context) error

	// Standings ranks every player; an empty key uses the configured default.
	Standings(ctx context.Context, key brackets.RankingKey) ([]models.Standing, error)
	// PreviewPairings computes the pairings for a round without recording anything.
	PreviewPairings(ctx context.Context, round int) (*models.RoundPairings, error)
	// StartRound computes the pairings and records the round's bye, if any.
	StartRound(ctx context.Context, round int) (*models.RoundPairings, error)
}

type tournamentService struct {
	tx         repositories.Transactor
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	byeRepo    repositories.ByeRepository
	generator  brackets.PairingGenerator
	publisher  EventPublisher
	archiver   RoundArchiver // nil when archiving is disabled
	ranking    RankingConfig
	logger     *slog.Logger
}

func NewTournamentService(
	tx repositories.Transactor,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	byeRepo repositories.ByeRepository,
	generator brackets.PairingGenerator,
	publisher EventPublisher,
	archiver RoundArchiver,
	ranking RankingConfig,
	logger *slog.Logger,
) TournamentService {
	if ranking.Standings == "" {
		ranking.Standings = brackets.RankByPoints
	}
	if ranking.Pairing == "" {
		ranking.Pairing = brackets.RankByWins
	}
	return &tournamentService{
		tx:         tx,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		byeRepo:    byeRepo,
		generator:  generator,
		publisher:  publisher,
		archiver:   archiver,
		ranking:    ranking,
		logger:     logger,
	}
}

type snapshot struct {
	players []models.Player
	matches []models.MatchResult
	byes    []*models.ByeRecord
}

func (s *tournamentService) loadSnapshot(ctx context.Context, exec repositories.SQLExecutor) (*snapshot, error) {
	players, err := s.playerRepo.ListAll(ctx, exec)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	matches, err := s.matchRepo.ListAll(ctx, exec)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	byes, err := s.byeRepo.ListAll(ctx, exec)
	if err != nil {
		return nil, fmt.Errorf("failed to load byes: %w", err)
	}
	return &snapshot{players: players, matches: matches, byes: byes}, nil
}

func (s *tournamentService) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	player := &models.Player{Name: name}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	s.logger.Info("player registered", slog.Int("player_id", player.ID), slog.String("name", player.Name))
	return player, nil
}

func (s *tournamentService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *tournamentService) CountPlayers(ctx context.Context) (int, error) {
	count, err := s.playerRepo.Count(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (s *tournamentService) DeletePlayers(ctx context.Context) error {
	if err := s.playerRepo.DeleteAll(ctx, nil); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	s.logger.Info("all players deleted")
	s.publisher.Publish(brackets.LiveRoom, brackets.EventTournamentReset, map[string]string{"scope": "players"})
	return nil
}

func (s *tournamentService) ReportMatch(ctx context.Context, input ReportMatchInput) (*models.MatchResult, error) {
	if input.WinnerID <= 0 || input.LoserID <= 0 {
		return nil, fmt.Errorf("%w: winner %d, loser %d", ErrInvalidPlayerID, input.WinnerID, input.LoserID)
	}
	if input.WinnerID == input.LoserID {
		return nil, fmt.Errorf("%w: player %d", ErrSamePlayer, input.WinnerID)
	}

	match := &models.MatchResult{WinnerID: input.WinnerID, LoserID: input.LoserID, IsDraw: input.IsDraw}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		if errors.Is(err, repositories.ErrPlayerReferenceInvalid) {
			return nil, fmt.Errorf("%w: winner %d or loser %d is not registered", ErrPlayerNotFound, input.WinnerID, input.LoserID)
		}
		if errors.Is(err, repositories.ErrMatchInvalid) {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("failed to report match: %w", err)
	}

	s.logger.Info("match reported",
		slog.Int("match_id", match.ID),
		slog.Int("winner_id", match.WinnerID),
		slog.Int("loser_id", match.LoserID),
		slog.Bool("is_draw", match.IsDraw),
	)
	s.publisher.Publish(brackets.LiveRoom, brackets.EventMatchReported, match)
	return match, nil
}

// DeleteMatches clears the match history and the bye history together, so a
// reset tournament starts with every player eligible for a bye again.
func (s *tournamentService) DeleteMatches(ctx context.Context) error {
	err := s.tx.WithinTransaction(ctx, nil, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.DeleteAll(ctx, exec); err != nil {
			return err
		}
		return s.byeRepo.DeleteAll(ctx, exec)
	})
	if err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	s.logger.Info("all matches and byes deleted")
	s.publisher.Publish(brackets.LiveRoom, brackets.EventTournamentReset, map[string]string{"scope": "matches"})
	return nil
}

func (s *tournamentService) Standings(ctx context.Context, key brackets.RankingKey) ([]models.Standing, error) {
	if key == "" {
		key = s.ranking.Standings
	}
	key, err := brackets.ParseRankingKey(string(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRankingKey, err)
	}

	var snap *snapshot
	err = s.tx.WithinTransaction(ctx, repositories.SnapshotTxOptions, func(exec repositories.SQLExecutor) error {
		var err error
		snap, err = s.loadSnapshot(ctx, exec)
		return err
	})
	if err != nil {
		return nil, err
	}

	standings, err := brackets.ComputeStandings(snap.players, snap.matches, key)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return standings, nil
}

func (s *tournamentService) PreviewPairings(ctx context.Context, round int) (*models.RoundPairings, error) {
	if round < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRound, round)
	}

	var result *models.RoundPairings
	err := s.tx.WithinTransaction(ctx, repositories.SnapshotTxOptions, func(exec repositories.SQLExecutor) error {
		snap, err := s.loadSnapshot(ctx, exec)
		if err != nil {
			return err
		}
		_, result, err = s.pair(snap, round)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *tournamentService) StartRound(ctx context.Context, round int) (*models.RoundPairings, error) {
	if round < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRound, round)
	}

	var (
		ranking []models.Standing
		result  *models.RoundPairings
	)
	err := s.tx.WithinTransaction(ctx, repositories.SnapshotTxOptions, func(exec repositories.SQLExecutor) error {
		existing, err := s.byeRepo.GetByRound(ctx, exec, round)
		if err != nil && !errors.Is(err, repositories.ErrByeNotFound) {
			return fmt.Errorf("failed to check bye for round %d: %w", round, err)
		}
		if existing != nil {
			return fmt.Errorf("%w: round %d (player %d)", ErrRoundAlreadyStarted, round, existing.PlayerID)
		}

		snap, err := s.loadSnapshot(ctx, exec)
		if err != nil {
			return err
		}
		ranking, result, err = s.pair(snap, round)
		if err != nil {
			return err
		}
		if result.Bye == nil {
			return nil
		}
		return s.recordBye(ctx, exec, result.Bye)
	})
	if err != nil {
		return nil, err
	}

	attrs := []any{slog.Int("round", round), slog.Int("pairings", len(result.Pairings))}
	if result.Bye != nil {
		attrs = append(attrs, slog.Int("bye_player_id", result.Bye.PlayerID))
	}
	s.logger.Info("round started", attrs...)

	s.publisher.Publish(brackets.LiveRoom, brackets.EventRoundStarted, result)
	s.archive(ctx, ranking, result)
	return result, nil
}

func (s *tournamentService) pair(snap *snapshot, round int) ([]models.Standing, *models.RoundPairings, error) {
	ranking, err := brackets.ComputeStandings(snap.players, snap.matches, s.ranking.Pairing)
	if err != nil {
		return nil, nil, mapEngineError(err)
	}
	result, err := s.generator.GeneratePairings(brackets.GeneratePairingsParams{
		Round:      round,
		Ranking:    ranking,
		ByeHistory: brackets.ByeSetFromRecords(snap.byes),
	})
	if err != nil {
		return nil, nil, mapEngineError(err)
	}
	return ranking, result, nil
}

func (s *tournamentService) recordBye(ctx context.Context, exec repositories.SQLExecutor, bye *models.ByeRecord) error {
	err := s.byeRepo.Create(ctx, exec, bye)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrByeRoundConflict):
		return fmt.Errorf("%w: round %d", ErrRoundAlreadyStarted, bye.Round)
	case errors.Is(err, repositories.ErrByeAlreadyAwarded):
		return fmt.Errorf("%w: player %d", ErrByeAlreadyAwarded, bye.PlayerID)
	case errors.Is(err, repositories.ErrPlayerReferenceInvalid):
		return fmt.Errorf("%w: %w", ErrPlayerNotFound, err)
	default:
		return fmt.Errorf("failed to record bye: %w", err)
	}
}

// archive uploads the round snapshot. The bye is already committed at this
// point, so a failed upload is logged and the round still stands.
func (s *tournamentService) archive(ctx context.Context, ranking []models.Standing, result *models.RoundPairings) {
	if s.archiver == nil {
		return
	}
	archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	uploads, err := s.archiver.ArchiveRound(archiveCtx, ranking, result)
	if err != nil {
		s.logger.Error("failed to archive round", slog.Int("round", result.Round), slog.Any("error", err))
		return
	}
	for _, u := range uploads {
		s.logger.Info("round archived", slog.Int("round", result.Round), slog.String("location", u.Location))
	}
}

func mapEngineError(err error) error {
	switch {
	case errors.Is(err, brackets.ErrUnsatisfiableBye):
		return fmt.Errorf("%w: %w", ErrNoByeCandidate, err)
	case errors.Is(err, brackets.ErrMalformedRound):
		return fmt.Errorf("%w: %w", ErrInvalidRound, err)
	case errors.Is(err, brackets.ErrUnknownRankingKey):
		return fmt.Errorf("%w: %w", ErrInvalidRankingKey, err)
	case errors.Is(err, brackets.ErrUnknownPlayer),
		errors.Is(err, brackets.ErrDuplicatePlayer),
		errors.Is(err, brackets.ErrSelfMatch):
		return fmt.Errorf("%w: %w", ErrDataIntegrity, err)
	default:
		return err
	}
}
