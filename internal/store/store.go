// Package store is the fake backend's in-memory persistence.
//
// Go Pattern: One *DB value owns all state behind a single RWMutex and is shared
// by every handler, the same way a *sqlx.DB connection pool would be. Methods are
// split across files by domain (history, settings) but share the receiver.
// Everything handed out is a copy, so callers can never mutate stored state.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// ErrNotFound is returned when a history entry does not exist.
var ErrNotFound = errors.New("not found")

// DB holds history entries (newest first), the transcript cache and settings.
type DB struct {
	mu sync.RWMutex

	entries     []models.HistoryEntry
	transcripts map[transcriptKey]cachedTranscript
	settings    models.Settings

	now func() time.Time
}

// New creates an empty store with default settings.
func New() *DB {
	return &DB{
		transcripts: make(map[transcriptKey]cachedTranscript),
		settings:    models.DefaultSettings(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// HealthCheck reports whether the store can serve requests.
func (db *DB) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}
