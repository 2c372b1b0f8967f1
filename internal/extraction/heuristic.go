package extraction

import (
	"strings"

	"github.com/phrazzld/insightboard/internal/domain"
)

const (
	// MaxItems caps the number of items a single extraction returns.
	MaxItems = 8

	// MaxTextLength is the longest item text, in characters, that is kept as is.
	MaxTextLength = 160

	ellipsis = "..."
)

// Item is one extracted action item. It is not persisted directly; the
// service turns items into tasks.
type Item struct {
	Text     string          `json:"text"`
	Priority domain.Priority `json:"priority"`
}

// Heuristic splits the transcript into sentences and returns the first
// MaxItems non-empty ones at default priority. It never fails.
func Heuristic(transcript string) []Item {
	fragments := strings.FieldsFunc(transcript, func(r rune) bool {
		return r == '.' || r == '\n' || r == '\r'
	})

	items := make([]Item, 0, MaxItems)
	for _, fragment := range fragments {
		text := strings.TrimSpace(fragment)
		if text == "" {
			continue
		}
		items = append(items, Item{Text: truncate(text), Priority: domain.DefaultPriority})
		if len(items) == MaxItems {
			break
		}
	}
	return items
}

// truncate shortens text longer than MaxTextLength runes to
// MaxTextLength-3 runes followed by an ellipsis.
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxTextLength {
		return text
	}
	return string(runes[:MaxTextLength-len(ellipsis)]) + ellipsis
}
