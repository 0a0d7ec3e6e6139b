// Package settings holds the single live copy of the user's settings and keeps
// it in step with the backend.
//
// The Store is a publish/subscribe cell: every successful Load, Update, Reset
// or Import replaces the held value wholesale and then calls each subscriber,
// synchronously and in registration order, with the new value.
//
// Load never fails from the caller's point of view: a broken backend leaves the
// defaults in place so the UI can still render. Update, Reset and Import do
// return their errors, because an edit that did not persist must be visible.
package settings

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// Backend is the slice of the API the store needs. *api.SettingsAPI satisfies it.
type Backend interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, update models.SettingsUpdate) (*models.Settings, error)
	Reset(ctx context.Context) (*models.Settings, error)
	Import(ctx context.Context, s models.Settings) (*models.Settings, error)
}

// Listener receives the new value after each successful mutation.
type Listener func(models.Settings)

type subscription struct {
	id uint64
	fn Listener
}

// Store is safe for concurrent use. Concurrent mutations are not ordered:
// whichever backend response completes last is the value that sticks.
//
// Listeners may call Current, Subscribe and unsubscribe functions, but must not
// call Load, Update, Reset or Import: publication is serialized and that would deadlock.
type Store struct {
	backend Backend
	logger  *zap.SugaredLogger

	publishMu sync.Mutex // serializes replace+notify

	mu     sync.RWMutex // guards value, subs, nextID
	value  models.Settings
	subs   []subscription
	nextID uint64
}

// NewStore creates a store holding models.DefaultSettings until the first Load.
func NewStore(backend Backend, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		value:   models.DefaultSettings(),
	}
}

// Current returns a copy of the held value.
func (s *Store) Current() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value.Clone()
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Store) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// Load fetches the persisted settings. On success the held value is replaced,
// subscribers are notified and the new value is returned with ok=true.
// On any failure the condition is logged, the held value stays as it was and
// ok is false. Load never returns an error.
func (s *Store) Load(ctx context.Context) (loaded *models.Settings, ok bool) {
	fetched, err := s.backend.Get(ctx)
	if err != nil {
		s.logger.Errorw("failed to load settings", "error", err)
		return nil, false
	}
	return s.publish(fetched), true
}

// Update persists a partial or full update. The held value only changes once
// the backend has accepted it; on failure the error is logged and returned.
func (s *Store) Update(ctx context.Context, update models.SettingsUpdate) (*models.Settings, error) {
	updated, err := s.backend.Update(ctx, update)
	if err != nil {
		s.logger.Errorw("failed to update settings", "error", err)
		return nil, err
	}
	return s.publish(updated), nil
}

// Reset restores the backend defaults, with the same contract as Update.
func (s *Store) Reset(ctx context.Context) (*models.Settings, error) {
	reset, err := s.backend.Reset(ctx)
	if err != nil {
		s.logger.Errorw("failed to reset settings", "error", err)
		return nil, err
	}
	return s.publish(reset), nil
}

// Import replaces the persisted settings wholesale, with the same contract as Update.
func (s *Store) Import(ctx context.Context, imported models.Settings) (*models.Settings, error) {
	stored, err := s.backend.Import(ctx, imported)
	if err != nil {
		s.logger.Errorw("failed to import settings", "error", err)
		return nil, err
	}
	return s.publish(stored), nil
}

// publish swaps in the new value and notifies every current subscriber.
func (s *Store) publish(next *models.Settings) *models.Settings {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	value := next.Clone()

	s.mu.Lock()
	s.value = value
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(value.Clone())
	}

	out := value.Clone()
	return &out
}
