package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain array", `[1,2]`, `[1,2]`},
		{"json fence", "```json\n[\"a\"]\n```", `["a"]`},
		{"bare fence", "```\n[\"a\"]```", `["a"]`},
		{"surrounding prose", "Items:\n[\"a\", \"b\"]\nDone.", `["a", "b"]`},
		{"no brackets", "nothing here", "nothing here"},
		{"object", `{"text":"a"}`, `{"text":"a"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sanitize(tc.input))
		})
	}
}

func TestStringForm(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", stringForm([]byte(`"hello"`)))
	assert.Equal(t, "", stringForm([]byte(`null`)))
	assert.Equal(t, "3.5", stringForm([]byte(`3.5`)))
	assert.Equal(t, `{"a":[1,2]}`, stringForm([]byte(`{ "a": [1, 2] }`)))
	assert.Equal(t, "true", stringForm([]byte(` true `)))
}
