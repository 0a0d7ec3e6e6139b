package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Matches timestamp lines like "00:00:01.000 --> 00:00:04.000"
	timestampRegex = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?[.,]\d{3}`)
	// Matches VTT tags like <c> and inline timing
	tagRegex = regexp.MustCompile(`<[^>]+>`)
	// Numeric cue identifiers
	cueIDRegex = regexp.MustCompile(`^\d+$`)
	spaceRegex = regexp.MustCompile(`\s+`)
	// A line ending a sentence
	sentenceEndRegex = regexp.MustCompile(`[.!?…]["')\]]?$`)

	videoIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	urlPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com/shorts/)([a-zA-Z0-9_-]{11})`),
	}
)

// ParseCaptionLines extracts the spoken lines from a WebVTT or SRT document.
// Formatting tags are stripped and consecutive repeats (rolling captions) dropped.
//
//	WEBVTT
//	00:00:01.000 --> 00:00:04.000
//	Hello, welcome to the video.
func ParseCaptionLines(doc string) []string {
	var lines []string
	last := ""

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)

		// Skip empty lines, the header, metadata, timestamps and NOTE blocks
		if line == "" || line == "WEBVTT" || strings.HasPrefix(line, "Kind:") ||
			strings.HasPrefix(line, "Language:") || strings.HasPrefix(line, "NOTE") ||
			timestampRegex.MatchString(line) || cueIDRegex.MatchString(line) {
			continue
		}

		line = strings.TrimSpace(tagRegex.ReplaceAllString(line, ""))
		if line == "" || line == last {
			continue
		}
		last = line
		lines = append(lines, line)
	}
	return lines
}

// RawTranscript keeps one caption line per text line.
func RawTranscript(lines []string) string {
	return strings.Join(lines, "\n")
}

// SentencesPerParagraph is how many sentences ProcessTranscript puts in a paragraph.
const SentencesPerParagraph = 2

// ProcessTranscript merges a raw transcript (one caption line per text line)
// into readable paragraphs.
func ProcessTranscript(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return MergeLines(lines, SentencesPerParagraph)
}

// MergeLines joins caption lines into paragraphs. A paragraph closes on a line
// that ends a sentence once it holds at least sentencesPerParagraph sentences.
func MergeLines(lines []string, sentencesPerParagraph int) string {
	if sentencesPerParagraph < 1 {
		sentencesPerParagraph = 1
	}

	var paragraphs []string
	var current []string
	sentences := 0

	for _, line := range lines {
		current = append(current, line)
		if sentenceEndRegex.MatchString(line) {
			sentences++
			if sentences >= sentencesPerParagraph {
				paragraphs = append(paragraphs, cleanTranscript(strings.Join(current, " ")))
				current = nil
				sentences = 0
			}
		}
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, cleanTranscript(strings.Join(current, " ")))
	}
	return strings.Join(paragraphs, "\n\n")
}

// cleanTranscript normalizes whitespace and removes caption artifacts.
func cleanTranscript(text string) string {
	text = strings.ReplaceAll(text, "[Music]", "")
	text = strings.ReplaceAll(text, "[Applause]", "")
	text = strings.ReplaceAll(text, "[Laughter]", "")
	text = spaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ParseYouTubeURL extracts the video ID from various YouTube URL formats.
// Supports:
//   - https://www.youtube.com/watch?v=VIDEO_ID
//   - https://youtu.be/VIDEO_ID
//   - https://youtube.com/watch?v=VIDEO_ID&list=...
//   - Just the video ID itself (11 characters)
//
// It returns the canonical watch URL and the ID.
func ParseYouTubeURL(input string) (string, string, error) {
	input = strings.TrimSpace(input)

	if videoIDRegex.MatchString(input) {
		return canonicalURL(input), input, nil
	}

	for _, pattern := range urlPatterns {
		matches := pattern.FindStringSubmatch(input)
		if len(matches) >= 2 {
			return canonicalURL(matches[1]), matches[1], nil
		}
	}

	return "", "", fmt.Errorf("invalid YouTube URL or video ID: %s", input)
}

func canonicalURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
