package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no session exists for the user
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record of a signed-in user: the JTI of the
// refresh token currently accepted for them plus a snapshot of the
// account, so a session lookup does not need a database round trip.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	IsStaff      bool      `json:"is_staff"`
	RefreshJTI   string    `json:"refresh_jti"`
	RefreshCount int       `json:"refresh_count"`
	RefreshedAt  time.Time `json:"refreshed_at"`
}

// SessionStore persists one session per user. Login and refresh
// overwrite the record; logout deletes it.
type SessionStore interface {
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	Find(ctx context.Context, userID string) (*Session, error)
	Delete(ctx context.Context, userID string) error
}

// RedisSessionStore implements SessionStore using Redis
type RedisSessionStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisSessionStore creates a session store with an existing Redis client
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{
		client:    client,
		keyPrefix: "session:user:",
	}
}

func (s *RedisSessionStore) key(userID string) string {
	return s.keyPrefix + userID
}

// Save stores the session, replacing any existing one for the user
func (s *RedisSessionStore) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.UserID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Find returns the user's session or ErrSessionNotFound
func (s *RedisSessionStore) Find(ctx context.Context, userID string) (*Session, error) {
	payload, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to deserialize session: %w", err)
	}
	return &session, nil
}

// Delete removes the user's session
func (s *RedisSessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

var _ SessionStore = (*RedisSessionStore)(nil)

// InMemorySessionStore implements SessionStore with an in-process map.
// Intended for tests and single-instance setups without Redis.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]inMemorySession
}

type inMemorySession struct {
	session   Session
	expiresAt time.Time
}

// NewInMemorySessionStore creates an in-memory session store
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[string]inMemorySession),
	}
}

// Save stores the session, replacing any existing one for the user
func (s *InMemorySessionStore) Save(_ context.Context, session *Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = inMemorySession{
		session:   *session,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Find returns the user's session or ErrSessionNotFound
func (s *InMemorySessionStore) Find(_ context.Context, userID string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[userID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, userID)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	session := entry.session
	return &session, nil
}

// Delete removes the user's session
func (s *InMemorySessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

var _ SessionStore = (*InMemorySessionStore)(nil)
