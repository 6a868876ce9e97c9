package repositories

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
)

// MemoryStore keeps players and matches in process memory. It backs local
// runs without DATABASE_URL and the service tests.
type MemoryStore struct {
	mu           sync.RWMutex
	players      []*models.Player
	matches      []*models.Match
	nextPlayerID int
	nextMatchID  int
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextPlayerID: 1,
		nextMatchID:  1,
		now:          time.Now,
	}
}

func (m *MemoryStore) Players() PlayerRepository { return memoryPlayers{m} }

func (m *MemoryStore) Matches() MatchRepository { return memoryMatches{m} }

// WithinTx holds the store's write lock for the whole of fn, so no other
// read or write interleaves with it, and restores the previous contents if fn
// fails. Inside fn only the methods that take the exec argument may be used;
// the others would wait for the lock fn is holding.
func (m *MemoryStore) WithinTx(_ context.Context, fn func(exec SQLExecutor) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	players := append([]*models.Player(nil), m.players...)
	matches := append([]*models.Match(nil), m.matches...)

	if err := fn(memoryTx{}); err != nil {
		m.players = players
		m.matches = matches
		return err
	}
	return nil
}

// lockFor takes the write lock unless exec belongs to a running WithinTx.
func (m *MemoryStore) lockFor(exec SQLExecutor) (unlock func()) {
	if _, ok := exec.(memoryTx); ok {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

var errMemoryNoSQL = errors.New("memory store does not execute SQL")

// memoryTx is the exec handed to WithinTx callbacks. It only marks the call as
// transactional; repositories of this store never run SQL through it.
type memoryTx struct{}

func (memoryTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errMemoryNoSQL
}

func (memoryTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errMemoryNoSQL
}

func (memoryTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type memoryPlayers struct{ s *MemoryStore }

func (r memoryPlayers) Create(_ context.Context, exec SQLExecutor, player *models.Player) error {
	if player.Name == "" {
		return ErrPlayerNameInvalid
	}

	defer r.s.lockFor(exec)()

	player.ID = r.s.nextPlayerID
	player.CreatedAt = r.s.now()
	r.s.nextPlayerID++

	copied := *player
	r.s.players = append(r.s.players, &copied)
	return nil
}

func (r memoryPlayers) GetByID(_ context.Context, id int) (*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.players {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, ErrPlayerNotFound
}

func (r memoryPlayers) List(_ context.Context) ([]*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Player, 0, len(r.s.players))
	for _, p := range r.s.players {
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

func (r memoryPlayers) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.players), nil
}

// DeleteAll keeps the id sequence running, like a Postgres SERIAL column does.
func (r memoryPlayers) DeleteAll(_ context.Context, exec SQLExecutor) error {
	defer r.s.lockFor(exec)()
	r.s.players = nil
	return nil
}

type memoryMatches struct{ s *MemoryStore }

func (r memoryMatches) Create(_ context.Context, exec SQLExecutor, match *models.Match) error {
	if match.WinnerID == match.LoserID {
		return ErrMatchSelfPlay
	}

	defer r.s.lockFor(exec)()

	if !r.s.hasPlayerLocked(match.WinnerID) || !r.s.hasPlayerLocked(match.LoserID) {
		return ErrMatchPlayerInvalid
	}

	match.ID = r.s.nextMatchID
	match.CreatedAt = r.s.now()
	r.s.nextMatchID++

	copied := *match
	r.s.matches = append(r.s.matches, &copied)
	return nil
}

func (r memoryMatches) List(_ context.Context) ([]*models.Match, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Match, 0, len(r.s.matches))
	for _, m := range r.s.matches {
		copied := *m
		result = append(result, &copied)
	}
	return result, nil
}

func (r memoryMatches) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.matches), nil
}

func (r memoryMatches) HasPlayed(_ context.Context, playerA, playerB int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.matches {
		if m.Involves(playerA, playerB) {
			return true, nil
		}
	}
	return false, nil
}

func (r memoryMatches) DeleteAll(_ context.Context, exec SQLExecutor) error {
	defer r.s.lockFor(exec)()
	r.s.matches = nil
	return nil
}

func (m *MemoryStore) hasPlayerLocked(id int) bool {
	for _, p := range m.players {
		if p.ID == id {
			return true
		}
	}
	return false
}
