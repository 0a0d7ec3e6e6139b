// Package transcript serves video transcripts for the fake backend.
//
// Go Pattern: The handlers depend on a small TranscriptSource interface, defined
// where it is used; Catalog is the in-memory implementation seeded with fixtures.
package transcript

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// ErrVideoNotFound is returned when the catalog has no such video.
var ErrVideoNotFound = errors.New("video not found")

// ErrNoCaptions is returned when the video has no captions in the requested language.
var ErrNoCaptions = errors.New("no subtitles available for this language")

// Video is one catalog entry: metadata plus caption documents keyed by language.
type Video struct {
	ID       string
	Info     models.VideoInfo
	Captions map[string]string // language code -> WebVTT document
}

// Languages returns the caption languages, sorted.
func (v *Video) Languages() []string {
	langs := make([]string, 0, len(v.Captions))
	for lang := range v.Captions {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Lines returns the parsed caption lines for lang.
func (v *Video) Lines(lang string) ([]string, error) {
	doc, ok := v.Captions[lang]
	if !ok {
		return nil, ErrNoCaptions
	}
	return ParseCaptionLines(doc), nil
}

// Catalog is an in-memory, concurrency-safe video store.
type Catalog struct {
	mu     sync.RWMutex
	videos map[string]*Video
}

// NewCatalog creates a catalog holding the given videos.
func NewCatalog(videos ...*Video) *Catalog {
	c := &Catalog{videos: make(map[string]*Video)}
	for _, v := range videos {
		c.Add(v)
	}
	return c
}

// Add inserts or replaces a video.
func (c *Catalog) Add(v *Video) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.videos[v.ID] = v
}

// Lookup finds a video by ID.
func (c *Catalog) Lookup(_ context.Context, videoID string) (*Video, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.videos[videoID]
	if !ok {
		return nil, ErrVideoNotFound
	}
	return v, nil
}

// DefaultCatalog returns the fixtures served by cmd/fakeserver.
func DefaultCatalog() *Catalog {
	return NewCatalog(&Video{
		ID: "dQw4w9WgXcQ",
		Info: models.VideoInfo{
			Title:       "Sample Talk: Learning Go",
			Duration:    212,
			Uploader:    "YTT Samples",
			UploadDate:  "20240127",
			Description: "A short sample transcript used for local development.",
		},
		Captions: map[string]string{
			"en": `WEBVTT
Kind: captions
Language: en

00:00:01.000 --> 00:00:03.000
Hello and welcome.

00:00:03.000 --> 00:00:06.000
Today we are learning Go.

00:00:06.000 --> 00:00:09.000
[Music]

00:00:09.000 --> 00:00:12.000
Go is a small language
<c>with a big standard library.</c>
`,
			"de": `WEBVTT

00:00:01.000 --> 00:00:03.000
Hallo und willkommen.

00:00:03.000 --> 00:00:06.000
Heute lernen wir Go.
`,
		},
	})
}
