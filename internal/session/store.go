// Package session owns the current signed-in Identity and mirrors it to a
// key-value blob store so it survives restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Skufu/healthcare-ai/internal/kv"
)

// DefaultKey is the blob-store key holding the persisted Identity.
const DefaultKey = "healthcareUser"

var ErrAnonymous = errors.New("session: no identity signed in")

// Store holds zero or one current Identity. Construct it with NewStore, then
// call Initialize once before serving.
type Store struct {
	blobs    kv.Store
	verifier Verifier
	log      *zap.Logger
	key      string
	newID    func() string

	mu      sync.RWMutex
	current *Identity

	readyOnce sync.Once
	ready     chan struct{}
}

// Option customizes a Store.
type Option func(*Store)

// WithKey overrides the persisted key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator overrides how signup mints identity ids.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewStore(blobs kv.Store, verifier Verifier, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		blobs:    blobs,
		verifier: verifier,
		log:      log,
		key:      DefaultKey,
		newID:    uuid.NewString,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize restores the persisted Identity, if any, and marks the store
// ready. Missing, unreadable or malformed records leave the store anonymous,
// so a repeated call always mirrors what the backend holds.
func (s *Store) Initialize(ctx context.Context) {
	defer s.readyOnce.Do(func() { close(s.ready) })

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	raw, err := s.blobs.Get(ctx, s.key)
	switch {
	case errors.Is(err, kv.ErrMiss):
		s.log.Debug("no stored session")
		return
	case err != nil:
		s.log.Warn("read stored session failed; starting anonymous", zap.Error(err))
		return
	}

	id, err := decodeIdentity(raw)
	if err != nil {
		s.log.Warn("discarding stored session", zap.Error(err))
		if rmErr := s.blobs.Remove(ctx, s.key); rmErr != nil {
			s.log.Warn("remove malformed session failed", zap.Error(rmErr))
		}
		return
	}

	s.current = &id
	s.log.Info("session restored", zap.String("user_id", id.ID), zap.String("role", string(id.Role)))
}

// Loading reports whether Initialize has not finished yet.
func (s *Store) Loading() bool {
	select {
	case <-s.ready:
		return false
	default:
		return true
	}
}

// Ready is closed once Initialize completes.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Current returns a copy of the signed-in Identity.
func (s *Store) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Identity{}, false
	}
	return cloneIdentity(*s.current), true
}

// Login signs in when the credentials match. A mismatch returns false and
// leaves the current Identity alone; the error reports storage failures only.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	id, ok := s.verifier.Verify(email, password)
	if !ok {
		s.log.Info("login rejected", zap.String("email", email))
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.adopt(ctx, id); err != nil {
		return false, err
	}
	s.log.Info("login", zap.String("user_id", id.ID), zap.String("role", string(id.Role)))
	return true, nil
}

// Signup mints a fresh user Identity and signs it in. Duplicate emails are
// not checked.
func (s *Store) Signup(ctx context.Context, name, email, password string) (bool, error) {
	id := Identity{
		ID:             s.newID(),
		Name:           name,
		Email:          email,
		Role:           RoleUser,
		MedicalHistory: []MedicalRecord{},
		Preferences:    map[string]any{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.adopt(ctx, id); err != nil {
		return false, err
	}
	s.log.Info("signup", zap.String("user_id", id.ID))
	return true, nil
}

// Logout forgets the current Identity and its persisted record.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blobs.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("session: remove record: %w", err)
	}
	if s.current != nil {
		s.log.Info("logout", zap.String("user_id", s.current.ID))
	}
	s.current = nil
	return nil
}

// UpdateProfile changes the display name and email of the signed-in Identity.
// Empty arguments keep the existing value.
func (s *Store) UpdateProfile(ctx context.Context, name, email string) (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Identity{}, ErrAnonymous
	}
	id := cloneIdentity(*s.current)
	if name != "" {
		id.Name = name
	}
	if email != "" {
		id.Email = email
	}
	if err := s.adopt(ctx, id); err != nil {
		return Identity{}, err
	}
	return cloneIdentity(id), nil
}

// adopt persists id and makes it current. Callers hold s.mu. The in-memory
// slot only changes after the write succeeds.
func (s *Store) adopt(ctx context.Context, id Identity) error {
	raw, err := encodeIdentity(id)
	if err != nil {
		return err
	}
	if err := s.blobs.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("session: persist record: %w", err)
	}
	s.current = &id
	return nil
}
