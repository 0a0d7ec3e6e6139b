// vtt_test.go: Unit tests for YouTube URL parsing and caption parsing.
//
// Test function names follow the pattern: TestFunctionName_Scenario
package transcript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseYouTubeURL tests all supported YouTube URL formats.
//
// Go Pattern: Table-driven tests are the standard Go pattern for testing
// multiple inputs. Define a slice of test cases, then loop through them.
func TestParseYouTubeURL(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantURL   string
		wantID    string
		wantError bool
	}{
		{
			name:    "standard youtube.com URL",
			input:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID:  "dQw4w9WgXcQ",
		},
		{
			name:    "youtube.com with extra params",
			input:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf&index=2",
			wantURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID:  "dQw4w9WgXcQ",
		},
		{
			name:    "youtu.be short URL",
			input:   "https://youtu.be/dQw4w9WgXcQ",
			wantURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID:  "dQw4w9WgXcQ",
		},
		{
			name:    "embed URL",
			input:   "https://www.youtube.com/embed/dQw4w9WgXcQ",
			wantURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID:  "dQw4w9WgXcQ",
		},
		{
			name:    "shorts URL",
			input:   "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			wantURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID:  "dQw4w9WgXcQ",
		},
		{
			name:    "plain video ID with whitespace",
			input:   "  a-B_c1D2e3F  ",
			wantURL: "https://www.youtube.com/watch?v=a-B_c1D2e3F",
			wantID:  "a-B_c1D2e3F",
		},
		{name: "empty string", input: "", wantError: true},
		{name: "random URL", input: "https://www.google.com", wantError: true},
		{name: "too short for video ID", input: "abc", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL, gotID, err := ParseYouTubeURL(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, gotURL)
			assert.Equal(t, tt.wantID, gotID)
		})
	}
}

func TestParseCaptionLines(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "basic VTT",
			doc: `WEBVTT

00:00:01.000 --> 00:00:04.000
Hello, welcome to the video.

00:00:04.500 --> 00:00:08.000
Today we talk about Go.`,
			want: []string{"Hello, welcome to the video.", "Today we talk about Go."},
		},
		{
			name: "rolling duplicates are dropped",
			doc: `WEBVTT

00:00:01.000 --> 00:00:04.000
Hello world

00:00:04.000 --> 00:00:06.000
Hello world

00:00:06.000 --> 00:00:08.000
Goodbye world`,
			want: []string{"Hello world", "Goodbye world"},
		},
		{
			name: "tags and header metadata",
			doc: `WEBVTT
Kind: captions
Language: en

00:00:01.000 --> 00:00:04.000
<c.colorCCCCCC>Hello</c> from <b>YouTube</b>`,
			want: []string{"Hello from YouTube"},
		},
		{
			name: "SRT cues",
			doc: `1
00:00:01,000 --> 00:00:02,000
First line

2
00:00:02,000 --> 00:00:03,000
Second line`,
			want: []string{"First line", "Second line"},
		},
		{
			name: "empty VTT",
			doc:  "WEBVTT",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCaptionLines(tt.doc))
		})
	}
}

func TestMergeLines(t *testing.T) {
	lines := []string{
		"Hello and welcome.",
		"Today we are learning Go.",
		"[Music]",
		"Go is a small language",
		"with a big standard library.",
	}

	t.Run("two sentences per paragraph", func(t *testing.T) {
		got := MergeLines(lines, 2)
		assert.Equal(t, "Hello and welcome. Today we are learning Go.\n\nGo is a small language with a big standard library.", got)
	})

	t.Run("unterminated tail is kept", func(t *testing.T) {
		got := MergeLines([]string{"no punctuation", "at all"}, 3)
		assert.Equal(t, "no punctuation at all", got)
	})

	t.Run("process from raw", func(t *testing.T) {
		got := ProcessTranscript("Hello and welcome.\n\nToday we are learning Go.\nBye.")
		assert.Equal(t, "Hello and welcome. Today we are learning Go.\n\nBye.", got)
	})

	t.Run("raw keeps line breaks", func(t *testing.T) {
		assert.Equal(t, "a\nb", RawTranscript([]string{"a", "b"}))
	})
}

// TestCleanTranscript tests transcript text cleanup.
func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "removes music tags", input: "Hello [Music] world", want: "Hello world"},
		{name: "collapses whitespace", input: "Hello    world   again", want: "Hello world again"},
		{name: "trims edges", input: "  Hello world  ", want: "Hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanTranscript(tt.input))
		})
	}
}

func TestCatalogLookup(t *testing.T) {
	c := DefaultCatalog()

	v, err := c.Lookup(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en"}, v.Languages())

	_, err = v.Lines("fr")
	assert.ErrorIs(t, err, ErrNoCaptions)

	_, err = c.Lookup(context.Background(), "zzzzzzzzzzz")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}
