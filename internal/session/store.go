package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/clinic-portal/internal/domain"
	"github.com/spec-kit/clinic-portal/internal/events"
)

// ErrNoSession is returned when no session exists for the given id.
var ErrNoSession = errors.New("session not found")

// Store is the persistent key-value contract behind portal sessions: two
// string fields per session id, no token validation at this layer.
type Store interface {
	Set(ctx context.Context, sessionID string, sess domain.Session) error
	Get(ctx context.Context, sessionID string) (domain.Session, error)
	Clear(ctx context.Context, sessionID string) error
	Has(ctx context.Context, sessionID string) (bool, error)
}

// Manager wraps a Store and broadcasts the process-wide "auth changed"
// notification on every write, synchronously, so listeners observe a
// consistent value immediately after.
type Manager struct {
	store      Store
	dispatcher events.Dispatcher
}

// NewManager builds a Manager over the given store.
func NewManager(store Store, dispatcher events.Dispatcher) *Manager {
	return &Manager{store: store, dispatcher: dispatcher}
}

// NewSessionID mints an opaque portal session id.
func NewSessionID() string {
	return uuid.NewString()
}

// SetSession persists the bearer credential under sessionID and emits the
// auth-changed notification.
func (m *Manager) SetSession(ctx context.Context, sessionID string, sess domain.Session, actor events.Actor) error {
	if err := m.store.Set(ctx, sessionID, sess); err != nil {
		return err
	}
	m.publish(ctx, events.EventSessionCreated, sessionID, actor, events.SessionPayload{})
	return nil
}

// ClearSession removes both session fields and emits the auth-changed
// notification. Clearing an absent session is not an error.
func (m *Manager) ClearSession(ctx context.Context, sessionID string, actor events.Actor, reason string) error {
	if err := m.store.Clear(ctx, sessionID); err != nil {
		return err
	}
	m.publish(ctx, events.EventSessionCleared, sessionID, actor, events.SessionPayload{Reason: reason})
	return nil
}

// GetSession loads the session for the id, ErrNoSession when absent.
func (m *Manager) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	return m.store.Get(ctx, sessionID)
}

// HasSession reports token presence without loading claims.
func (m *Manager) HasSession(ctx context.Context, sessionID string) bool {
	ok, err := m.store.Has(ctx, sessionID)
	return err == nil && ok
}

func (m *Manager) publish(ctx context.Context, t events.EventType, sessionID string, actor events.Actor, payload any) {
	if m.dispatcher == nil {
		return
	}
	_ = m.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      t,
		SessionID: sessionID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

// memoryStore keeps sessions in-process. It backs tests and deployments
// without Redis.
type memoryStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]memoryEntry
}

type memoryEntry struct {
	sess      domain.Session
	expiresAt time.Time
}

// NewMemoryStore returns an in-process Store with the given TTL.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{ttl: ttl, data: make(map[string]memoryEntry)}
}

func (s *memoryStore) Set(_ context.Context, sessionID string, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = memoryEntry{sess: sess, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.data[sessionID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return domain.Session{}, ErrNoSession
	}
	return entry.sess, nil
}

func (s *memoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *memoryStore) Has(ctx context.Context, sessionID string) (bool, error) {
	_, err := s.Get(ctx, sessionID)
	if errors.Is(err, ErrNoSession) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
