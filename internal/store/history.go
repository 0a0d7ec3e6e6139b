package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// HistoryFilter narrows ListHistory. Limit and Offset are expected to be validated.
type HistoryFilter struct {
	Limit      int
	Offset     int
	SourceLang string
	TargetLang string
}

// transcriptKey identifies a cached transcript fetch.
type transcriptKey struct {
	videoID    string
	sourceLang string
	targetLang string
}

type cachedTranscript struct {
	entryID  string
	response models.YouTubeResponse
}

// --- History Operations ---

// AddHistory inserts a new entry at the front of the history.
// The ID and CreatedAt are generated; whatever the caller set is ignored.
func (db *DB) AddHistory(ctx context.Context, e *models.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	e.ID = uuid.NewString()
	e.CreatedAt = db.now()
	e.UpdatedAt = nil
	db.entries = append([]models.HistoryEntry{cloneEntry(*e)}, db.entries...)
	return nil
}

// UpdateHistory overwrites the text fields of an existing entry and stamps
// UpdatedAt. The entry keeps its position and CreatedAt.
func (db *DB) UpdateHistory(ctx context.Context, e *models.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.indexOf(e.ID)
	if i < 0 {
		return fmt.Errorf("history entry %s: %w", e.ID, ErrNotFound)
	}
	now := db.now()
	e.CreatedAt = db.entries[i].CreatedAt
	e.UpdatedAt = &now
	db.entries[i] = cloneEntry(*e)
	return nil
}

// GetHistory retrieves an entry by ID.
func (db *DB) GetHistory(ctx context.Context, id string) (*models.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()

	i := db.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("history entry %s: %w", id, ErrNotFound)
	}
	e := cloneEntry(db.entries[i])
	return &e, nil
}

// ListHistory returns entries newest first, filtered and paginated.
// It never returns nil, so an empty history encodes as [].
func (db *DB) ListHistory(ctx context.Context, f HistoryFilter) ([]models.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]models.HistoryEntry, 0, f.Limit)
	skipped := 0
	for _, e := range db.entries {
		if f.SourceLang != "" && e.SourceLang != f.SourceLang {
			continue
		}
		if f.TargetLang != "" && e.TargetLang != f.TargetLang {
			continue
		}
		if skipped < f.Offset {
			skipped++
			continue
		}
		if len(out) == f.Limit {
			break
		}
		out = append(out, cloneEntry(e))
	}
	return out, nil
}

// DeleteHistory removes an entry and any transcript cached under it.
func (db *DB) DeleteHistory(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.indexOf(id)
	if i < 0 {
		return fmt.Errorf("history entry %s: %w", id, ErrNotFound)
	}
	db.entries = append(db.entries[:i:i], db.entries[i+1:]...)
	db.dropCached(id)
	return nil
}

// ClearHistory removes every entry and the transcript cache. It returns how
// many entries were removed.
func (db *DB) ClearHistory(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	n := len(db.entries)
	db.entries = nil
	db.transcripts = make(map[transcriptKey]cachedTranscript)
	return n, nil
}

// PruneHistory drops entries created before cutoff and returns how many went.
func (db *DB) PruneHistory(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	kept := db.entries[:0]
	removed := 0
	for _, e := range db.entries {
		if e.CreatedAt.Before(cutoff) {
			db.dropCached(e.ID)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	db.entries = kept
	return removed, nil
}

// --- Transcript cache ---

// CacheTranscript remembers a fetch result under the entry that recorded it.
func (db *DB) CacheTranscript(ctx context.Context, entryID string, resp models.YouTubeResponse) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	key := transcriptKey{resp.VideoID, resp.SourceLang, resp.TargetLang}
	db.transcripts[key] = cachedTranscript{entryID: entryID, response: cloneResponse(resp)}
	return nil
}

// FindTranscript returns a cached fetch result, or ErrNotFound.
func (db *DB) FindTranscript(ctx context.Context, videoID, sourceLang, targetLang string) (*models.YouTubeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()

	cached, ok := db.transcripts[transcriptKey{videoID, sourceLang, targetLang}]
	if !ok {
		return nil, fmt.Errorf("transcript %s (%s->%s): %w", videoID, sourceLang, targetLang, ErrNotFound)
	}
	resp := cloneResponse(cached.response)
	return &resp, nil
}

// indexOf must be called with db.mu held.
func (db *DB) indexOf(id string) int {
	for i := range db.entries {
		if db.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// dropCached must be called with db.mu held for writing.
func (db *DB) dropCached(entryID string) {
	for key, cached := range db.transcripts {
		if cached.entryID == entryID {
			delete(db.transcripts, key)
		}
	}
}

func cloneEntry(e models.HistoryEntry) models.HistoryEntry {
	if e.AvailableLanguages != nil {
		e.AvailableLanguages = append([]string(nil), e.AvailableLanguages...)
	}
	if e.VideoInfo != nil {
		info := *e.VideoInfo
		e.VideoInfo = &info
	}
	return e
}

func cloneResponse(r models.YouTubeResponse) models.YouTubeResponse {
	if r.AvailableLanguages != nil {
		r.AvailableLanguages = append([]string(nil), r.AvailableLanguages...)
	}
	return r
}
