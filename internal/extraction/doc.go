// Package extraction turns a meeting transcript into a short, ordered list
// of action items. It asks a language model through the Completer port when
// one is configured and falls back to a deterministic sentence splitter
// whenever the model is missing, fails, or returns something unusable.
package extraction
