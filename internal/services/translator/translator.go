// Package translator is the fake backend's stand-in translation engine.
//
// It is deterministic on purpose: a "translation" is the source text with every
// line tagged by the target language, so tests can assert on exact output.
// Language detection is a small stop-word vote.
package translator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Shimizu-Technology/ytt-client/pkg/models"
)

// AutoDetect is the source code that asks the engine to detect the language.
const AutoDetect = "auto"

var (
	// ErrUnsupportedLanguage is returned for codes outside the language table.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrUnavailable is returned when the engine is configured to fail a target.
	ErrUnavailable = errors.New("translation service unavailable")
)

// languages is the supported table, code -> display name.
var languages = map[string]string{
	"en": "English",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"it": "Italian",
	"ja": "Japanese",
}

// stopWords drive detection; a handful per language is enough for the fixtures.
var stopWords = map[string][]string{
	"en": {"the", "and", "is", "are", "we", "hello", "welcome", "today", "with"},
	"de": {"der", "die", "und", "ist", "wir", "hallo", "heute", "willkommen", "mit"},
	"fr": {"le", "la", "et", "est", "nous", "bonjour", "monde", "aujourd'hui", "avec"},
	"es": {"el", "la", "y", "es", "hola", "mundo", "hoy", "con", "nosotros"},
	"it": {"il", "e", "è", "ciao", "oggi", "con", "noi", "mondo", "benvenuti"},
}

// Result is one translation.
type Result struct {
	Text             string
	DetectedLanguage string
}

// Detection is one candidate language with its share of the vote.
type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Engine translates between the supported languages.
type Engine struct {
	mu          sync.RWMutex
	unavailable map[string]bool
}

// New creates an engine. Targets listed as unavailable fail with ErrUnavailable,
// which lets the fake backend exercise partial transcript failures.
func New(unavailableTargets ...string) *Engine {
	e := &Engine{unavailable: make(map[string]bool)}
	for _, t := range unavailableTargets {
		e.unavailable[t] = true
	}
	return e
}

// SetUnavailable toggles failure for a target language.
func (e *Engine) SetUnavailable(target string, unavailable bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.unavailable[target] = unavailable
}

// Supported reports whether code is in the language table.
func Supported(code string) bool {
	_, ok := languages[code]
	return ok
}

// Translate tags every non-empty line of text with the target language.
// A source of "auto" is detected first.
func (e *Engine) Translate(text, source, target string) (*Result, error) {
	if source != AutoDetect && !Supported(source) {
		return nil, fmt.Errorf("%w: source %q", ErrUnsupportedLanguage, source)
	}
	if !Supported(target) {
		return nil, fmt.Errorf("%w: target %q", ErrUnsupportedLanguage, target)
	}

	e.mu.RLock()
	down := e.unavailable[target]
	e.mu.RUnlock()
	if down {
		return nil, fmt.Errorf("%w: cannot translate into %q", ErrUnavailable, target)
	}

	detected := source
	if source == AutoDetect {
		detected = e.Detect(text)[0].Language
	}
	if detected == target {
		return &Result{Text: text, DetectedLanguage: detected}, nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = fmt.Sprintf("[%s] %s", target, line)
		}
	}
	return &Result{Text: strings.Join(lines, "\n"), DetectedLanguage: detected}, nil
}

// Detect ranks languages by stop-word hits, best first. It always returns at
// least one candidate; text with no hits is reported as English with zero confidence.
func (e *Engine) Detect(text string) []Detection {
	counts := make(map[string]int)
	total := 0
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"()")
		for lang, words := range stopWords {
			for _, sw := range words {
				if word == sw {
					counts[lang]++
					total++
				}
			}
		}
	}

	if total == 0 {
		return []Detection{{Language: "en", Confidence: 0}}
	}

	out := make([]Detection, 0, len(counts))
	for lang, n := range counts {
		out = append(out, Detection{Language: lang, Confidence: float64(n) / float64(total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Language < out[j].Language
	})
	return out
}

// Languages returns the language table; every language targets every other one.
func (e *Engine) Languages() []models.Language {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]models.Language, 0, len(codes))
	for _, code := range codes {
		targets := make([]string, 0, len(codes)-1)
		for _, other := range codes {
			if other != code {
				targets = append(targets, other)
			}
		}
		out = append(out, models.Language{Code: code, Name: languages[code], Targets: targets})
	}
	return out
}
