package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	"github.com/phrazzld/insightboard/internal/redact"
)

// Source identifies which path produced a Result.
type Source string

// Possible result sources.
const (
	SourceModel     Source = "model"
	SourceHeuristic Source = "heuristic"
)

// DefaultTimeout bounds a single model call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Result is the outcome of one extraction.
type Result struct {
	Items          []Item
	Source         Source
	FallbackReason string
}

// Extractor derives action items from transcripts.
type Extractor struct {
	logger    *slog.Logger
	completer Completer
	prompt    *template.Template
	timeout   time.Duration
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCompleter sets the language model port. A nil completer leaves the
// extractor in heuristic-only mode.
func WithCompleter(c Completer) Option {
	return func(e *Extractor) {
		e.completer = c
	}
}

// WithTimeout bounds each model call.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithPromptTemplate replaces the embedded prompt template.
func WithPromptTemplate(t *template.Template) Option {
	return func(e *Extractor) {
		if t != nil {
			e.prompt = t
		}
	}
}

// NewExtractor creates an Extractor. Without WithCompleter it only uses the
// heuristic.
func NewExtractor(logger *slog.Logger, opts ...Option) (*Extractor, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfig)
	}

	prompt, err := LoadPromptTemplate("")
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		logger:  logger.With("component", "extractor"),
		prompt:  prompt,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ModelEnabled reports whether a language model is configured.
func (e *Extractor) ModelEnabled() bool {
	return e.completer != nil
}

// Extract returns at most MaxItems items for the transcript. Model failures
// are not returned as errors; they switch the result to the heuristic and
// record why in FallbackReason.
func (e *Extractor) Extract(ctx context.Context, transcript string) Result {
	if e.completer == nil {
		return e.fallback(ctx, transcript, "model not configured", nil)
	}

	items, err := e.extractWithModel(ctx, transcript)
	if err != nil {
		reason := "model call failed"
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			reason = "model call timed out"
		case errors.Is(err, ErrInvalidResponse):
			reason = "model response was not a JSON array"
		case errors.Is(err, ErrNoItems):
			reason = "model response had no usable items"
		}
		return e.fallback(ctx, transcript, reason, err)
	}

	e.logger.InfoContext(ctx, "extracted action items with model", "item_count", len(items))
	return Result{Items: items, Source: SourceModel}
}

func (e *Extractor) extractWithModel(ctx context.Context, transcript string) ([]Item, error) {
	prompt, err := renderPrompt(e.prompt, transcript)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	output, err := e.completer.Complete(callCtx, SystemInstruction, prompt)
	e.logger.DebugContext(ctx, "model call finished",
		"duration_ms", time.Since(start).Milliseconds(),
		"output_length", len(output))
	if err != nil {
		if callCtx.Err() != nil && !errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return nil, err
	}

	items, err := parseItems(sanitize(output))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

func (e *Extractor) fallback(ctx context.Context, transcript, reason string, cause error) Result {
	attrs := []any{"reason", reason}
	if cause != nil {
		attrs = append(attrs, "error", redact.Error(cause))
	}
	if e.completer != nil {
		e.logger.WarnContext(ctx, "falling back to heuristic extraction", attrs...)
	} else {
		e.logger.DebugContext(ctx, "using heuristic extraction", attrs...)
	}

	return Result{
		Items:          Heuristic(transcript),
		Source:         SourceHeuristic,
		FallbackReason: reason,
	}
}
