// Package clipboard copies text through whatever clipboard the host UI offers.
//
// Two strategies are tried in order. The first selects the text in a short-lived
// element and runs the synchronous copy command; it works in non-secure contexts
// where the async clipboard is missing. The second calls the asynchronous
// clipboard write, for contexts where synthetic selection is blocked.
// Neither strategy is allowed to crash the caller: the outcome is a bool.
package clipboard

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Selection is a temporary, off-screen, focused element holding the text.
// It must be released exactly once.
type Selection interface {
	// Copy runs the synchronous copy command on the selected text.
	Copy() (bool, error)
	// Release detaches the element from the document.
	Release()
}

// SelectionSurface creates selections (strategy 1).
type SelectionSurface interface {
	Acquire(text string) (Selection, error)
}

// AsyncWriter writes text through the asynchronous clipboard API (strategy 2).
type AsyncWriter interface {
	WriteText(ctx context.Context, text string) error
}

// ErrUnavailable is logged when no strategy could be attempted.
var ErrUnavailable = errors.New("no clipboard available")

// Copier tries the selection surface first and falls back to the async writer.
// Either capability may be nil when the host lacks it.
type Copier struct {
	surface SelectionSurface
	writer  AsyncWriter
	logger  *zap.SugaredLogger
}

// NewCopier wires the host capabilities.
func NewCopier(surface SelectionSurface, writer AsyncWriter, logger *zap.SugaredLogger) *Copier {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Copier{surface: surface, writer: writer, logger: logger}
}

// Copy puts text on the clipboard and reports whether it worked.
// Empty text returns false without touching either capability.
func (c *Copier) Copy(ctx context.Context, text string) bool {
	if text == "" {
		return false
	}

	if c.copyWithSelection(text) {
		return true
	}

	if c.writer == nil {
		c.logger.Errorw("failed to copy text", "error", ErrUnavailable)
		return false
	}
	if err := c.writeAsync(ctx, text); err != nil {
		c.logger.Errorw("failed to copy text", "error", err)
		return false
	}
	return true
}

// copyWithSelection runs strategy 1. The selection is released on every path,
// including a panic inside the host's Copy.
func (c *Copier) copyWithSelection(text string) (ok bool) {
	if c.surface == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Debugw("selection copy panicked", "panic", r)
			ok = false
		}
	}()

	sel, err := c.surface.Acquire(text)
	if err != nil || sel == nil {
		return false
	}
	defer sel.Release()

	copied, err := sel.Copy()
	if err != nil {
		c.logger.Debugw("selection copy failed", "error", err)
		return false
	}
	return copied
}

func (c *Copier) writeAsync(ctx context.Context, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("async clipboard write panicked: %v", r)
		}
	}()
	return c.writer.WriteText(ctx, text)
}
