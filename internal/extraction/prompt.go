package extraction

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

// SystemInstruction is sent with every model request.
const SystemInstruction = "You are an assistant that extracts actionable items from meeting transcripts."

//go:embed prompts/action_items.tmpl
var defaultPromptTemplate string

type promptData struct {
	Transcript string
	MaxItems   int
}

// LoadPromptTemplate parses the prompt template at path, or the embedded
// default when path is empty.
func LoadPromptTemplate(path string) (*template.Template, error) {
	content := defaultPromptTemplate
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				ErrInvalidConfig, path, err)
		}
		content = string(raw)
	}

	tmpl, err := template.New("action_items").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return tmpl, nil
}

func renderPrompt(tmpl *template.Template, transcript string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{Transcript: transcript, MaxItems: MaxItems}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
