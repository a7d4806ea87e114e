package session

import (
	"context"
	"errors"
	"sort"
	"sync"

	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/cricklet/chessboard/internal/store"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

type Store interface {
	Saver
	Load(ctx context.Context, id string) (store.Record, error)
	List(ctx context.Context) ([]string, error)
}

type Manager struct {
	Logger Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	store    Store
}

type ManagerOption func(*Manager)

func WithManagerLogger(logger Logger) ManagerOption {
	return func(m *Manager) {
		m.Logger = logger
	}
}

func WithStore(s Store) ManagerOption {
	return func(m *Manager) {
		m.store = s
	}
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		Logger:   &SilentLogger,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) sessionOptions(id string) []Option {
	opts := []Option{WithID(id), WithLogger(m.Logger)}
	if m.store != nil {
		opts = append(opts, WithSaver(m.store))
	}
	return opts
}

// NewGame creates a session in the standard position under a fresh id.
func (m *Manager) NewGame() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	s := NewSession(m.sessionOptions(id)...)
	s.Reset()
	m.sessions[id] = s

	m.Logger.Println("new game", id)
	return s
}

// Get returns a live session, restoring it from the store if this process
// has not seen it yet.
func (m *Manager) Get(id string) (*Session, Error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, NilError
	}

	if m.store == nil {
		return nil, Errorf("%v: %w", id, ErrGameNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, NilError
	}

	record, err := m.store.Load(context.Background(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, Errorf("%v: %w", id, ErrGameNotFound)
	} else if err != nil {
		return nil, Wrap(err)
	}

	s = NewSession(m.sessionOptions(id)...)
	if err := s.SetupPosition(Position{Fen: record.StartFen, Moves: record.Moves}); !IsNil(err) {
		return nil, Errorf("restore %v: %w", id, err)
	}
	m.sessions[id] = s

	m.Logger.Println("restored game", id, "at", s.FenString())
	return s, NilError
}

// IDs lists the live sessions of this process.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns every known game: stored games most recently updated first,
// then live games the store doesn't have.
func (m *Manager) List(ctx context.Context) ([]string, Error) {
	live := m.IDs()
	if m.store == nil {
		return live, NilError
	}

	stored, err := m.store.List(ctx)
	if err != nil {
		return nil, Wrap(err)
	}
	for _, id := range live {
		if !Contains(stored, id) {
			stored = append(stored, id)
		}
	}
	return stored, NilError
}
