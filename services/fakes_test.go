package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/storage"
)

// memoryStore mimics the players, matches and byes tables including their
// foreign keys and unique constraints.
type memoryStore struct {
	mu      sync.Mutex
	nextID  int
	players []models.Player
	matches []models.MatchResult
	byes    []*models.ByeRecord

	failListMatches error
	txCount         int
	lastTxOpts      *sql.TxOptions
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nextID: 1}
}

func (m *memoryStore) hasPlayer(id int) bool {
	for _, p := range m.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// WithinTransaction restores the previous state when fn fails.
func (m *memoryStore) WithinTransaction(ctx context.Context, opts *sql.TxOptions, fn func(exec repositories.SQLExecutor) error) error {
	m.mu.Lock()
	m.txCount++
	m.lastTxOpts = opts
	players := append([]models.Player(nil), m.players...)
	matches := append([]models.MatchResult(nil), m.matches...)
	byes := append([]*models.ByeRecord(nil), m.byes...)
	m.mu.Unlock()

	if err := fn(nil); err != nil {
		m.mu.Lock()
		m.players, m.matches, m.byes = players, matches, byes
		m.mu.Unlock()
		return err
	}
	return nil
}

type memoryPlayers struct{ *memoryStore }

func (r memoryPlayers) Create(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	player.ID = r.nextID
	r.nextID++
	r.players = append(r.players, *player)
	return nil
}

func (r memoryPlayers) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r memoryPlayers) ListAll(ctx context.Context, exec repositories.SQLExecutor) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Player(nil), r.players...), nil
}

func (r memoryPlayers) Count(ctx context.Context, exec repositories.SQLExecutor) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players), nil
}

// DeleteAll cascades to matches and byes.
func (r memoryPlayers) DeleteAll(ctx context.Context, exec repositories.SQLExecutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players, r.matches, r.byes = nil, nil, nil
	return nil
}

type memoryMatches struct{ *memoryStore }

func (r memoryMatches) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.MatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasPlayer(match.WinnerID) || !r.hasPlayer(match.LoserID) {
		return fmt.Errorf("%w (matches_winner_id_fkey)", repositories.ErrPlayerReferenceInvalid)
	}
	if match.WinnerID == match.LoserID {
		return fmt.Errorf("%w (matches_distinct_players)", repositories.ErrMatchInvalid)
	}
	match.ID = len(r.matches) + 1
	r.matches = append(r.matches, *match)
	return nil
}

func (r memoryMatches) ListAll(ctx context.Context, exec repositories.SQLExecutor) ([]models.MatchResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failListMatches != nil {
		return nil, r.failListMatches
	}
	return append([]models.MatchResult(nil), r.matches...), nil
}

func (r memoryMatches) DeleteAll(ctx context.Context, exec repositories.SQLExecutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = nil
	return nil
}

type memoryByes struct{ *memoryStore }

func (r memoryByes) Create(ctx context.Context, exec repositories.SQLExecutor, bye *models.ByeRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasPlayer(bye.PlayerID) {
		return fmt.Errorf("%w: player %d", repositories.ErrPlayerReferenceInvalid, bye.PlayerID)
	}
	for _, b := range r.byes {
		if b.PlayerID == bye.PlayerID {
			return fmt.Errorf("%w: player %d", repositories.ErrByeAlreadyAwarded, bye.PlayerID)
		}
		if b.Round == bye.Round {
			return fmt.Errorf("%w: round %d", repositories.ErrByeRoundConflict, bye.Round)
		}
	}
	stored := *bye
	r.byes = append(r.byes, &stored)
	return nil
}

func (r memoryByes) GetByRound(ctx context.Context, exec repositories.SQLExecutor, round int) (*models.ByeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.byes {
		if b.Round == round {
			found := *b
			return &found, nil
		}
	}
	return nil, repositories.ErrByeNotFound
}

func (r memoryByes) ListAll(ctx context.Context, exec repositories.SQLExecutor) ([]*models.ByeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ByeRecord, len(r.byes))
	for i, b := range r.byes {
		c := *b
		out[i] = &c
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out, nil
}

func (r memoryByes) DeleteAll(ctx context.Context, exec repositories.SQLExecutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byes = nil
	return nil
}

type publishedEvent struct {
	room    string
	event   string
	payload interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(roomID, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{room: roomID, event: eventType, payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.event
	}
	return out
}

type memoryUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	failKey string
}

func newMemoryUploader() *memoryUploader {
	return &memoryUploader{objects: make(map[string][]byte)}
}

func (u *memoryUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if key == u.failKey {
		return nil, errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = bytes.Clone(data)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return "https://archive.test/" + key
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
