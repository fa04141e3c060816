package auth

import (
	"context"
	"fmt"
	"sync"
)

// Record is the persisted form of a session: the raw token plus the
// derived claims, stored so a restart can rebuild the session without
// re-decoding the token.
type Record struct {
	Token      string
	Role       string
	EmployeeID string
}

// Repo is the durable backing store for the session record.
type Repo interface {
	// Load returns the persisted record, or nil if no session exists.
	Load(ctx context.Context) (*Record, error)

	// Save replaces the persisted record.
	Save(ctx context.Context, rec Record) error

	// Clear removes every persisted identity field in one statement.
	Clear(ctx context.Context) error
}

// SessionStore owns the current credential. It is the only writer of
// session state; every other component reads through it.
type SessionStore struct {
	repo Repo

	mu   sync.Mutex
	cred *Credential
}

// NewSessionStore creates a SessionStore backed by the given repo.
func NewSessionStore(repo Repo) *SessionStore {
	return &SessionStore{repo: repo}
}

// Hydrate restores the credential from durable storage at startup.
// A persisted token that no longer decodes degrades to "no session"
// and the stale record is cleared.
func (s *SessionStore) Hydrate(ctx context.Context) error {
	rec, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if rec == nil {
		return nil
	}

	cred, err := DecodeCredential(rec.Token)
	if err != nil {
		if clearErr := s.repo.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clear stale session: %w", clearErr)
		}
		return nil
	}

	s.mu.Lock()
	s.cred = cred
	s.mu.Unlock()
	return nil
}

// SetCredential decodes and persists a new token. On decode failure the
// store is left in its prior state and a *DecodeError is returned; this
// is the only path that makes the session authenticated.
func (s *SessionStore) SetCredential(ctx context.Context, rawToken string) (*Credential, error) {
	cred, err := DecodeCredential(rawToken)
	if err != nil {
		return nil, err
	}

	rec := Record{
		Token:      cred.Token,
		Role:       string(cred.Role),
		EmployeeID: cred.EmployeeID,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.cred = cred
	s.mu.Unlock()
	return cred, nil
}

// Credential returns the current credential, or nil when logged out.
func (s *SessionStore) Credential() *Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

// IsAuthenticated reports whether a credential is present.
func (s *SessionStore) IsAuthenticated() bool {
	return s.Credential() != nil
}

// Clear erases the session. Durable storage is cleared before the
// in-memory mirror so a crash between the two still reads as logged out
// after restart.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.mu.Lock()
	s.cred = nil
	s.mu.Unlock()
	return nil
}
