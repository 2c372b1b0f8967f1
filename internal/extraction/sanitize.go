package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/phrazzld/insightboard/internal/domain"
)

var codeFence = regexp.MustCompile("```(json)?\\n?|```")

// sanitize strips markdown code fences and anything outside the outermost
// JSON array brackets.
func sanitize(output string) string {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(output, ""))

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}
	return cleaned
}

// parseItems reads sanitized model output as a JSON array and coerces each
// element into an Item. Elements may be objects with text and priority
// fields or bare values.
func parseItems(output string) ([]Item, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(output), &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	items := make([]Item, 0, MaxItems)
	for _, element := range elements {
		item := coerce(element)
		item.Text = strings.TrimSpace(item.Text)
		if item.Text == "" {
			continue
		}
		item.Text = truncate(item.Text)
		items = append(items, item)
		if len(items) == MaxItems {
			break
		}
	}
	return items, nil
}

func coerce(element json.RawMessage) Item {
	item := Item{Text: stringForm(element), Priority: domain.DefaultPriority}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil || fields == nil {
		return item
	}

	if text, ok := fields["text"]; ok {
		item.Text = stringForm(text)
	}
	if priority, ok := fields["priority"]; ok {
		item.Priority = domain.NormalizePriority(stringForm(priority))
	}
	return item
}

// stringForm returns a JSON string's value, "" for null, and compact JSON
// for anything else.
func stringForm(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}
