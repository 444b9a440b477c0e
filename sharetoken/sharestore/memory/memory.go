// Package memory is an in-process Store implementation for package
// sharetoken, backed by a single mutex. Suitable for tests and for
// single-process deployments; package postgres backs the same interface
// with a database-level compare-and-set for multi-process deployments.
//
// Grounded on dafibh-fortuna-backend's middleware/rate_limit.go in-memory
// limiter map: a plain mutex-guarded map is that repository's idiom for small shared
// mutable state that doesn't warrant a database round trip.
package memory

import (
	"context"
	"sync"
	"time"

	"incomeverify/models"
	"incomeverify/sharetoken"
)

// Store is a mutex-guarded map of token -> models.ShareToken.
type Store struct {
	mu     sync.Mutex
	tokens map[string]models.ShareToken
}

// New constructs an empty Store.
func New() *Store {
	return &Store{tokens: make(map[string]models.ShareToken)}
}

func (s *Store) Create(_ context.Context, token models.ShareToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tokens[token.Token]; exists {
		return sharetoken.ErrTokenCollision
	}
	s.tokens[token.Token] = token
	return nil
}

func (s *Store) Get(_ context.Context, token string) (models.ShareToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[token]
	if !ok {
		return models.ShareToken{}, sharetoken.ErrTokenNotFound
	}
	return t, nil
}

// ValidateAndIncrement holds the mutex across the read-check-write
// sequence, which is what gives this store its per-token serializability
// against a concurrent Revoke (spec §5).
func (s *Store) ValidateAndIncrement(_ context.Context, token, ip string, now time.Time) (models.ShareToken, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[token]
	if !ok {
		return models.ShareToken{}, false, sharetoken.ErrTokenNotFound
	}
	if !t.IsValid(now) {
		return t, false, nil
	}

	t.AccessCount++
	accessedAt := now
	t.LastAccessedAt = &accessedAt
	t.LastAccessedIP = ip
	s.tokens[token] = t
	return t, true, nil
}

func (s *Store) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[token]
	if !ok {
		return sharetoken.ErrTokenNotFound
	}
	t.Revoked = true
	s.tokens[token] = t
	return nil
}
